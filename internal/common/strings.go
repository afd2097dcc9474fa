package common

// UnknownStr is the String form of out-of-range enum values.
const UnknownStr = "unknown"
