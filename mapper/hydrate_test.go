package mapper_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madmapper/mapper"
	"madmapper/strategy"
)

func holdingRows() []any {
	row := func(ein, ssn, isin string, qty int) any {
		return map[string]any{
			"EMPLOYER_IDENTIFICATION_NUMBER": ein,
			"SOCIAL_SECURITY_NUMBER":         ssn,
			"HOLDING": map[string]any{
				"ISIN":           isin,
				"SHARE_QUANTITY": qty,
			},
		}
	}

	return []any{
		row("987654321", "123456789", "US1234567890", 47),
		row("987654321", "123456789", "US2345678901", 80),
		row("987654321", "345678912", "US2345678901", 23),
		row("876543219", "234567891", "US1234567890", 400),
		row("876543219", "234567891", "US2345678901", 120),
	}
}

func toJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return string(data)
}

func TestHydrate_GroupOfGroups(t *testing.T) {
	holdings := mapper.NewTree().
		Set("internationalStockIdentificationNumber", mapper.Path("HOLDING.ISIN")).
		Set("totalShares", mapper.Path("HOLDING.SHARE_QUANTITY"))

	participants := mapper.NewTree().
		Set("socialSecurityNumber", mapper.Alias("SOCIAL_SECURITY_NUMBER")).
		Set("holdings", mapper.Strategy(func(_ any, h mapper.Handles, bucket []any) (any, error) {
			return h.Array(bucket, holdings)
		}))

	employers := mapper.NewTree().
		Set("employerIdentificationNumber", mapper.Alias("EMPLOYER_IDENTIFICATION_NUMBER")).
		Set("participants", mapper.Strategy(func(_ any, h mapper.Handles, bucket []any) (any, error) {
			return h.Group(bucket, strategy.By("SOCIAL_SECURITY_NUMBER"), participants)
		}))

	out, err := mapper.New().Group(holdingRows(), strategy.By("EMPLOYER_IDENTIFICATION_NUMBER"), employers)
	require.NoError(t, err)

	// first-seen order: numeric-looking keys are not sorted
	assert.Equal(t, `[`+
		`{"employerIdentificationNumber":"987654321","participants":[`+
		`{"socialSecurityNumber":"123456789","holdings":[`+
		`{"internationalStockIdentificationNumber":"US1234567890","totalShares":47},`+
		`{"internationalStockIdentificationNumber":"US2345678901","totalShares":80}]},`+
		`{"socialSecurityNumber":"345678912","holdings":[`+
		`{"internationalStockIdentificationNumber":"US2345678901","totalShares":23}]}]},`+
		`{"employerIdentificationNumber":"876543219","participants":[`+
		`{"socialSecurityNumber":"234567891","holdings":[`+
		`{"internationalStockIdentificationNumber":"US1234567890","totalShares":400},`+
		`{"internationalStockIdentificationNumber":"US2345678901","totalShares":120}]}]}]`,
		toJSON(t, out))
}

func TestHydrate_Summary(t *testing.T) {
	tree := mapper.NewTree().
		Set("employerIdentificationNumber", mapper.Alias("EMPLOYER_IDENTIFICATION_NUMBER")).
		Set("averageHoldingSize", strategy.Average("HOLDING.SHARE_QUANTITY")).
		Set("totalParticipants", strategy.Group("", strategy.By("SOCIAL_SECURITY_NUMBER"), strategy.CountBuckets()))

	out, err := mapper.New().Group(holdingRows(), strategy.By("EMPLOYER_IDENTIFICATION_NUMBER"), tree)
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"employerIdentificationNumber":"987654321","averageHoldingSize":50,"totalParticipants":2},
		{"employerIdentificationNumber":"876543219","averageHoldingSize":260,"totalParticipants":1}
	]`, toJSON(t, out))
}

func TestHydrate_EmployersAndParticipantTotals(t *testing.T) {
	source := []any{
		map[string]any{"EMPLOYER_ID": "A", "PERSON_ID": "p1", "AMOUNT": 10},
		map[string]any{"EMPLOYER_ID": "B", "PERSON_ID": "p3", "AMOUNT": 7.25},
		map[string]any{"EMPLOYER_ID": "A", "PERSON_ID": "p2", "AMOUNT": 5},
		map[string]any{"EMPLOYER_ID": "A", "PERSON_ID": "p1", "AMOUNT": 2.5},
		map[string]any{"EMPLOYER_ID": "B", "PERSON_ID": "p3", "AMOUNT": 0.75},
	}

	participant := mapper.NewTree().
		Set("personId", mapper.Alias("PERSON_ID")).
		Set("totalAmount", strategy.Sum("AMOUNT"))

	employer := mapper.NewTree().
		Set("employerId", mapper.Alias("EMPLOYER_ID")).
		Set("participants", strategy.Group("", strategy.By("PERSON_ID"), participant))

	out, err := mapper.New().Group(source, strategy.By("EMPLOYER_ID"), employer)
	require.NoError(t, err)

	employers := out.([]any)
	require.Len(t, employers, 2)

	type total struct {
		employer, person string
		amount           float64
	}

	var got []total

	for _, e := range employers {
		rec := e.(*mapper.Record)
		for _, p := range mapper.Items(mapper.Lookup(rec, "participants")) {
			got = append(got, total{
				employer: mapper.Lookup(rec, "employerId").(string),
				person:   mapper.Lookup(p, "personId").(string),
				amount:   mapper.Lookup(p, "totalAmount").(float64),
			})
		}
	}

	assert.Equal(t, []total{
		{"A", "p1", 12.5},
		{"A", "p2", 5},
		{"B", "p3", 8},
	}, got)
}

func TestHydrate_SubGroupsShareBothKeys(t *testing.T) {
	source := holdingRows()

	inner := mapper.NewTree().
		Set("ssn", mapper.Alias("SOCIAL_SECURITY_NUMBER")).
		Set("members", strategy.Collect("EMPLOYER_IDENTIFICATION_NUMBER"))

	outer := mapper.NewTree().
		Set("ein", mapper.Alias("EMPLOYER_IDENTIFICATION_NUMBER")).
		Set("groups", strategy.Group("", strategy.By("SOCIAL_SECURITY_NUMBER"), inner))

	out, err := mapper.New().Group(source, strategy.By("EMPLOYER_IDENTIFICATION_NUMBER"), outer)
	require.NoError(t, err)
	require.Len(t, out, 2)

	seen := 0

	for _, o := range out.([]any) {
		ein := mapper.Lookup(o, "ein")

		for _, g := range mapper.Items(mapper.Lookup(o, "groups")) {
			members := mapper.Lookup(g, "members").([]any)
			require.NotEmpty(t, members)

			for _, m := range members {
				assert.Equal(t, ein, m, fmt.Sprintf("sub-group %v", mapper.Lookup(g, "ssn")))
			}

			seen += len(members)
		}
	}

	assert.Equal(t, len(source), seen)
}

func TestHydrate_DeepArrayWithStrategies(t *testing.T) {
	source := []any{
		map[string]any{
			"SOCIAL_SECURITY_NUMBER": "123456789",
			"HOLDINGS": []any{
				map[string]any{"ISIN": "US1234567890", "SHARE_QUANTITY": 100},
				map[string]any{"ISIN": "US2345678901", "SHARE_QUANTITY": 250},
			},
		},
		map[string]any{
			"SOCIAL_SECURITY_NUMBER": "234567891",
			"HOLDINGS":               []any{},
		},
	}

	tree := mapper.NewTree().
		Set("socialSecurityNumber", mapper.Alias("SOCIAL_SECURITY_NUMBER")).
		Set("funds", strategy.Array("HOLDINGS", mapper.NewTree().
			Set("isin", mapper.Alias("ISIN")).
			Set("totalShares", mapper.Alias("SHARE_QUANTITY")).
			Set("fundCount", strategy.Count())))

	out, err := mapper.New().Array(source, tree)
	require.NoError(t, err)

	assert.Equal(t, `[`+
		`{"socialSecurityNumber":"123456789","funds":[`+
		`{"isin":"US1234567890","totalShares":100,"fundCount":2},`+
		`{"isin":"US2345678901","totalShares":250,"fundCount":2}]},`+
		`{"socialSecurityNumber":"234567891","funds":[]}]`,
		toJSON(t, out))
}
