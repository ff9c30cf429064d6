package graph

import "golang.org/x/xerrors"

var (
	//ErrNotFound is returned when looking up a vertex or record that doesn't exist
	ErrNotFound = xerrors.New("not found")
	//ErrResultSetExists is returned when creating a result set whose name is already in use
	ErrResultSetExists = xerrors.New("result set name already in use")
	//ErrUnknownResultSet is returned when looking up or removing a result set that was never created
	ErrUnknownResultSet = xerrors.New("unknown result set")
)
