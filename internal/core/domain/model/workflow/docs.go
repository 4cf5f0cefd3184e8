// Package workflow holds the order status state machine: the immutable
// registry of status definitions and the guard that decides whether an actor
// may move an order along an edge of the graph.
//
// The default graph ships embedded as statuses.yaml:
//
//	reg, err := workflow.LoadDefaultRegistry()
//	if err != nil {
//	    return err
//	}
//	g := workflow.NewGuard(reg)
//	if err := g.Check(role.Compta, order.Pending, order.Confirmed); err != nil {
//	    return err // *errs.PermissionDeniedError
//	}
//
// A Registry is never modified after loading, so it is shared between
// goroutines without locking.
package workflow
