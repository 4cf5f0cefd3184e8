package services

import (
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
)

// Placeholders available in titles and messages.
const (
	placeholderNumber = "{number}"
	placeholderOld    = "{old}"
	placeholderNew    = "{new}"
	placeholderActor  = "{actor}"
	placeholderReason = "{reason}"
)

type template struct {
	title   string
	message string
}

type templateKey struct {
	status order.Status
	role   role.Role
}

var genericTemplate = template{
	title:   "Order {number} status changed",
	message: "Order {number} moved from {old} to {new} by {actor}. {reason}",
}

var templates = map[templateKey]template{
	{order.Pending, role.Compta}: {
		title:   "Order {number} awaits validation",
		message: "Order {number} was submitted by {actor} and needs accounting validation.",
	},
	{order.Pending, role.Admin}: {
		title:   "Order {number} submitted",
		message: "Order {number} was submitted by {actor}.",
	},
	{order.Confirmed, role.Client}: {
		title:   "Your order {number} is confirmed",
		message: "Your order {number} was validated by accounting and will be prepared shortly.",
	},
	{order.Confirmed, role.Counter}: {
		title:   "Order {number} ready to prepare",
		message: "Order {number} was confirmed by {actor}. It can now be prepared.",
	},
	{order.Rejected, role.Client}: {
		title:   "Your order {number} was rejected",
		message: "Your order {number} was rejected by accounting. Reason: {reason}",
	},
	{order.Rejected, role.Admin}: {
		title:   "Order {number} rejected",
		message: "Order {number} was rejected by {actor}. Reason: {reason}",
	},
	{order.Preparing, role.Client}: {
		title:   "Your order {number} is being prepared",
		message: "Our counter team started preparing your order {number}.",
	},
	{order.Ready, role.Client}: {
		title:   "Your order {number} is ready",
		message: "Your order {number} is packed and waiting for the carrier.",
	},
	{order.Shipped, role.Client}: {
		title:   "Your order {number} has shipped",
		message: "Your order {number} was handed to the carrier.",
	},
	{order.Delivered, role.Client}: {
		title:   "Your order {number} was delivered",
		message: "Your order {number} was delivered. Thank you for your business.",
	},
	{order.Delivered, role.Compta}: {
		title:   "Order {number} delivered",
		message: "Order {number} was delivered and can be invoiced.",
	},
	{order.Completed, role.Client}: {
		title:   "Your order {number} is complete",
		message: "Your order {number} is now closed.",
	},
	{order.Cancelled, role.Client}: {
		title:   "Your order {number} was cancelled",
		message: "Your order {number} was cancelled by {actor}. Reason: {reason}",
	},
	{order.Cancelled, role.Counter}: {
		title:   "Order {number} cancelled",
		message: "Stop any work on order {number}: it was cancelled by {actor}.",
	},
}

var highPriority = map[order.Status]bool{
	order.Rejected:  true,
	order.Cancelled: true,
}
