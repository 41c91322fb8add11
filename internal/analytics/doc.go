// Package analytics derives visitor and team performance metrics from raw
// records: milestone progress, attendance rates, lifecycle risk, and the
// per-team metrics snapshot.
//
// Every function here is a pure, stateless computation over a snapshot of
// records plus an explicit reference time. Nothing reads the wall clock,
// nothing caches, nothing persists. Zero denominators always resolve to 0;
// empty cohorts (new teams, new visitors) are the common case, not an error.
package analytics
