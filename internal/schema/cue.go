package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/dshills/healthcheck/internal/audit"
)

//go:embed schemas/bank.cue
var bankSchema []byte

var (
	cueOnce sync.Once
	cueCtx  *cue.Context
	cueDef  cue.Value
	cueErr  error
)

func loadBankDef() (*cue.Context, cue.Value, error) {
	cueOnce.Do(func() {
		cueCtx = cuecontext.New()
		inst := cueCtx.CompileBytes(bankSchema, cue.Filename("bank.cue"))
		if err := inst.Err(); err != nil {
			cueErr = fmt.Errorf("compile bank schema: %w", err)
			return
		}
		cueDef = inst.LookupPath(cue.ParsePath("#Bank"))
		if !cueDef.Exists() {
			cueErr = fmt.Errorf("bank schema has no #Bank definition")
		}
	})
	return cueCtx, cueDef, cueErr
}

// ValidateCUE unifies the bank with the embedded #Bank CUE definition and
// reports every type or constraint violation.
func ValidateCUE(b *audit.Bank) []ValidationError {
	ctx, def, err := loadBankDef()
	if err != nil {
		return []ValidationError{{"schema", err.Error()}}
	}

	data := ctx.Encode(b)
	if err := data.Err(); err != nil {
		return []ValidationError{{"bank", fmt.Sprintf("encode: %v", err)}}
	}

	unified := def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fromCUE(err)
	}
	return nil
}

func fromCUE(err error) []ValidationError {
	var errs []ValidationError
	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(e.Path(), ".")
		if path == "" {
			path = "bank"
		}
		format, args := e.Msg()
		errs = append(errs, ValidationError{path, fmt.Sprintf(format, args...)})
	}
	return errs
}
