// Package config loads instruction files: YAML documents that describe a
// mapping declaratively so it can be run without writing Go.
//
// # Document
//
//	version: "1"
//	entry: group            # object (default), array or group
//	group_by: EMPLOYER_ID   # required for entry: group
//	aggregate: count        # optional, a named group summary
//	instructions:
//	  employerId: EMPLOYER_ID
//	  firstName: {path: NAME.FIRST}
//	  label: {strategy: upper, field: NAME.LAST}
//	  fullName: {join: [NAME.FIRST, NAME.LAST], sep: " "}
//	  fixed: {const: 42}
//	  employee:
//	    object: {ssn: SSN}
//	  funds:
//	    array: {from: HOLDINGS, instructions: {isin: ISIN}}
//	  participants:
//	    group:
//	      by: PERSON_ID
//	      instructions:
//	        personId: PERSON_ID
//	        total: {sum: AMOUNT}
//	  people: {group: {by: PERSON_ID, aggregate: count}}
//	  rows: {count: true}
//
// A plain string is a field alias. A mapping holds exactly one operator.
// Destination keys keep the order in which they are written.
//
// object and array accept either the instructions themselves or the long
// form {from, instructions}; without from, object maps the current record
// and array maps the broader context. group always uses the long form.
// sum, avg, min, max, collect and count read the broader context.
//
// # Usage
//
//	doc, err := config.LoadFile("instructions.yaml")
//	prog, err := config.Compile(doc, strategy.Builtins())
//	out, err := prog.Run(mapper.New(), input)
//
// Validate reports every problem at once as diagnostics; Compile refuses a
// document that has errors.
package config
