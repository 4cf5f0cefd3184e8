// Package order provides the Order aggregate of the B2B order workflow.
//
// The package includes:
//   - Order: identity, number, owning client, total and the status-dependent
//     timestamps (shipped/delivered/completed)
//   - Status: the lifecycle stage keys known to the workflow registry
//   - the effect table applied when an order arrives in a status
//
// Key business rules:
//   - An order is created in the pending status
//   - Status and its derived fields change only through Order.Transition,
//     which the workflow engine calls after the transition guard accepted the move
//   - Transition never mutates the receiver; it returns the updated copy
//   - Only shipped, delivered and completed carry derived effects; every other
//     field is left untouched
package order
