// Package services provides domain services of the order workflow that do not
// belong to a single aggregate.
//
// The package includes:
//   - NotificationComposer: builds the notification sent to one audience when
//     an order changes status
package services
