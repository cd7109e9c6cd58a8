package hull

import "errors"

var (
	ErrTooFewPoints = errors.New("hull: at least 4 points are required")
	ErrCollinear    = errors.New("hull: points are collinear")
	ErrCoplanar     = errors.New("hull: points are coplanar")
	ErrInvalidMesh  = errors.New("hull: resulting mesh is not a closed manifold")
)
