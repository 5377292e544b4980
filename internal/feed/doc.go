// Package feed provides the demo content source for lazyfeed: a gorm-backed
// item store paged with keyset pagination, YAML fixtures for seeding, and a
// Loader that adapts the store to a scroll.LoadFunc.
//
// Pages are fetched with "id > cursor ORDER BY id LIMIT n+1". The extra row
// is a lookahead: when it comes back the store knows another page exists
// without issuing a COUNT.
//
// Supported drivers are "sqlite", "postgres" and "mysql".
package feed
