package mindpaper

import (
	"errors"
	"fmt"
)

// CycleError is returned by Reparent when the new parent is the node itself
// or one of its descendants.
type CycleError struct {
	NodeID      NodeID
	NewParentID NodeID
}

func (e *CycleError) Error() string {
	if e.NodeID == e.NewParentID {
		return fmt.Sprintf("mindpaper: node %d cannot be its own parent", e.NodeID)
	}
	return fmt.Sprintf("mindpaper: node %d is a descendant of %d", e.NewParentID, e.NodeID)
}

// NotFoundError is returned when an operation names a node that is not in
// the tree.
type NotFoundError struct {
	NodeID NodeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mindpaper: node %d not found", e.NodeID)
}

// Errors reported by FlatTree.Validate and FlatTree.Nest.
var (
	ErrNoRoot          = errors.New("mindpaper: tree has no root")
	ErrMultipleRoots   = errors.New("mindpaper: tree has more than one root")
	ErrDuplicateID     = errors.New("mindpaper: duplicate node id")
	ErrDanglingParent  = errors.New("mindpaper: parent id does not exist")
	ErrUnreachableNode = errors.New("mindpaper: node is not reachable from the root")
)

// IsCycle reports whether err is or wraps a *CycleError.
func IsCycle(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrReadOnly is returned by editing actions invoked outside edit mode.
var ErrReadOnly = errors.New("mindpaper: not in edit mode")

// ErrNoSelection is returned by menu actions when no node is selected.
var ErrNoSelection = errors.New("mindpaper: no node selected")
