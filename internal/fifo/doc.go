// Package fifo implements first-in-first-out cost-basis accounting for a
// single tradable instrument.
//
// Given a ledger of buy and sell transactions and a current market price,
// the package computes realized gains, unrealized gains, the remaining
// position, its weighted average cost and how commissions are attributed
// between closed and open positions. It also validates that a ledger (or a
// pending insert, edit or delete against it) never sells more units than
// were held at that point in history.
//
// All arithmetic uses github.com/shopspring/decimal. Values are kept at full
// precision during accumulation and are rounded half-up to two decimal
// places only when a result is built. The package performs no I/O and holds
// no shared state, so computations for different instruments may run
// concurrently.
package fifo
