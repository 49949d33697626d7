package store

import (
	"database/sql/driver"
	"fmt"

	"github.com/viant/vec/search"
	sqlite "modernc.org/sqlite"
)

// RegisterDistanceFunctions registers dist_cosine and dist_l2 with the
// SQLite driver so consumers can score the stored theta/beta BLOBs directly
// in SQL, e.g.
//
//	SELECT b.id FROM docs a, docs b
//	WHERE a.id = 0 ORDER BY dist_l2(a.theta, b.theta) LIMIT 10;
//
// Registration is driver-global and must happen before the connections that
// use the functions are opened; duplicate registration is ignored.
func RegisterDistanceFunctions() error {
	_ = sqlite.RegisterDeterministicScalarFunction("dist_cosine", 2, distCosineImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("dist_l2", 2, distL2Impl)
	return nil
}

func asWeights(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return DecodeWeights(v)
	default:
		return nil, fmt.Errorf("store: unsupported argument type %T for weight vector; want BLOB", arg)
	}
}

func distCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := weightArgs("dist_cosine", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("dist_cosine: dimension mismatch %d vs %d", len(a), len(b))
	}
	va := search.Float32s(a)
	vb := search.Float32s(b)
	return float64(va.CosineDistanceWithMagnitudesNeon(b, va.Magnitude(), vb.Magnitude())), nil
}

func distL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := weightArgs("dist_l2", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("dist_l2: dimension mismatch %d vs %d", len(a), len(b))
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}

func weightArgs(name string, args []driver.Value) ([]float32, []float32, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := asWeights(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asWeights(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
