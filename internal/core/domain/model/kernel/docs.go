// Package kernel holds the shared value objects of the order workflow domain:
// identifiers and the clock used to stamp transitions and audit entries.
package kernel
