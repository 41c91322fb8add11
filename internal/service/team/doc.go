// Package team orchestrates the read-only analytics surface: per-team
// metrics, the church-wide recommendation bundle, and the notification hook
// fired when an action item is acted upon.
//
// Every computation reads a snapshot of visitor/team/strategy records and
// derives the result in memory; nothing is cached or persisted. A malformed
// or unreadable team degrades to a logged anomaly, never a failed request.
package team
