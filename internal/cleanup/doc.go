// Package cleanup filters raw team rosters down to the teams that have real names.
//
// Ownership boundary:
// - per-line classification (placeholder code vs team name)
// - roster sanity assertions
// - streaming and file-level filtering
package cleanup
