// Package finkeeper keeps a personal ledger of incomes and expenses.
//
// A ledger is a list of [Record]s (date, reason, signed amount) kept in a
// [Records] collection. Records can be sorted by date or amount and narrowed
// with a chain of [Filters], each one selecting a date or amount range.
//
// The ledger is persisted in a compact binary file (see [EncodeRecords]) that
// is rewritten in full after every change. Loading is forgiving: a missing or
// damaged file yields what could be read.
//
// A [Session] ties it together for the interactive shell of the `fk` command.
package finkeeper
