/*
Package verification tracks the lifecycle of on-chain verification requests.

A request moves through a small state machine keyed by invoice id:

	Idle -> Pending -> Fulfilled | Failed

Submit sends the request to the ledger, extracts the request id from the
confirmation's event logs and records the entry as Pending. The matching
fulfillment (or failure) event flips it to a terminal state. A new Submit for
the same invoice overwrites the tracked entry: last submit wins, no queueing.

SubmitManual bypasses the oracle round-trip and marks the invoice Fulfilled
directly with the given score; it exists for testing and demos.

Subscriptions are scoped to the service instance and return unsubscribe
handles that are safe to call repeatedly and after the event has fired.
*/
package verification
