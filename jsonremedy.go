// Package jsonremedy repairs malformed, LLM-wrapped, or truncated
// JSON-ish text into valid JSON. It runs Repair's candidate text
// through a fixed pipeline: pre-pipeline aggregation of sibling
// top-level values, content cleaning (fences, comments, HTML wrappers,
// prose), structural repair (bracket/brace balancing), syntax
// normalization (quoting, literal casing, punctuation), strict
// validation, and — unless Strictness is Strict — a bounded tolerant
// parse as a last resort.
package jsonremedy

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/audit"
	"github.com/nshkrdotcom/jsonremedy/internal/charutil"
	"github.com/nshkrdotcom/jsonremedy/internal/obslog"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/quality"
	"github.com/nshkrdotcom/jsonremedy/internal/schema"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/aggregate"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/clean"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/normalize"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/structural"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/tolerant"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/validate"
)

// RepairAction is the public mirror of internal/action.Record: one
// entry in the audit trail a repair run produced.
type RepairAction struct {
	Stage       string
	Action      string
	Position    *int
	Original    *string
	Replacement *string
}

// RepairResult is what a successful Repair call returns.
type RepairResult struct {
	Value   any
	Actions []RepairAction

	// Quality is populated only when Options.Debug is set, as
	// RepairWithDebug does (spec.md never
	// defines a minimum-quality Non-goal, so this never gates success).
	Quality *quality.Score

	// SchemaWarning is set when Options.SchemaPath is configured and
	// Value fails to conform — never a hard failure (§11).
	SchemaWarning string
}

// Repair attempts to recover a valid JSON value tree from input.
func Repair(input []byte, opts Options) (*RepairResult, error) {
	return repair(input, opts)
}

// RepairToString is Repair followed by a compact re-marshal.
func RepairToString(input []byte, opts Options) (string, error) {
	res, err := repair(input, opts)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(res.Value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// RepairWithDebug is Repair with Options.Logging and Options.Debug
// set: the result additionally carries a quality Score, and stage
// transitions are traced through internal/obslog. The action trail is
// the same one Repair returns; when the fast path succeeds it holds
// only UTF-8 repair actions, if any.
func RepairWithDebug(input []byte, opts Options) (*RepairResult, error) {
	opts.Logging = true
	opts.Debug = true
	return repair(input, opts)
}

func repair(input []byte, opts Options) (*RepairResult, error) {
	if int64(len(input)) > opts.MaxSizeBytes() {
		return nil, newPipelineError(action.InputTooLarge, "ingest", nil)
	}

	type outcome struct {
		res *RepairResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := runPipeline(input, opts)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-time.After(opts.Timeout()):
		return nil, newPipelineError(action.Timeout, "pipeline", nil)
	}
}

func runPipeline(input []byte, opts Options) (*RepairResult, error) {
	ctx := action.New(opts)
	log := obslog.New(opts.Debug)

	runes, fixes := charutil.DecodeUTF8Repairing(input)
	for _, f := range fixes {
		pos := f.RunePos
		orig := f.Bytes
		ctx.Log(action.ContentCleaning, "replaced invalid UTF-8 byte sequence with U+FFFD", &pos, &orig, nil)
	}
	inputRunes := len(runes)

	if strings.TrimSpace(string(runes)) == "" {
		return nil, newPipelineError(action.Unrepairable, "ingest", exportActions(ctx))
	}

	if opts.FastPathOptimization {
		if value, ok := validate.Decode(runes); ok {
			log.Debugf("fast path: input already valid JSON")
			return finalize(ctx, opts, value, inputRunes), nil
		}
	}

	log.Debugf("stage: aggregate + clean + early-patterns")
	preStages := []pipeline.Stage{aggregate.New(), clean.New(), normalize.NewEarlyPatterns()}
	cur := pipeline.Run(preStages, ctx, runes).Runes

	log.Debugf("stage: structural-repair")
	structRes := structural.New().Process(ctx, cur)
	if structRes.Status == pipeline.StatusError {
		return nil, newPipelineError(structRes.Reason, "structural-repair", exportActions(ctx))
	}
	cur = structRes.Runes

	log.Debugf("stage: syntax-normalization")
	cur = normalize.New().Process(ctx, cur).Runes

	log.Debugf("stage: validation")
	if validateRes := validate.New().Process(ctx, cur); validateRes.Status == pipeline.StatusOK {
		return finalize(ctx, opts, validateRes.Value, inputRunes), nil
	}

	if opts.Strictness == Strict {
		return nil, newPipelineError(action.Unrepairable, "validation", exportActions(ctx))
	}

	log.Debugf("stage: tolerant-parsing")
	tolerantRes := tolerant.New().Process(ctx, cur)
	if tolerantRes.Status == pipeline.StatusError {
		return nil, newPipelineError(tolerantRes.Reason, "tolerant-parsing", exportActions(ctx))
	}

	return finalize(ctx, opts, tolerantRes.Value, inputRunes), nil
}

// finalize builds the RepairResult for a successful repair, running the
// optional debug-quality scoring, schema conformance check, and audit
// ledger write that Options may have requested.
func finalize(ctx *action.Context, opts Options, value any, inputRunes int) *RepairResult {
	res := &RepairResult{Value: value, Actions: exportActions(ctx)}

	if opts.Debug {
		s := quality.Compute(inputRunes, ctx.Actions)
		res.Quality = &s
	}

	if opts.SchemaPath != "" {
		if r := schema.CheckFile(opts.SchemaPath, value); !r.Conforms {
			res.SchemaWarning = r.Warning
		}
	}

	if opts.AuditDB != "" {
		log := obslog.New(opts.Debug)
		ledger, err := audit.Open(opts.AuditDB)
		if err != nil {
			log.Warnf("audit: failed to open ledger at %s: %v", opts.AuditDB, err)
		} else {
			if err := ledger.Record(int64(inputRunes), true, time.Now().Unix(), ctx.Actions); err != nil {
				log.Warnf("audit: failed to record repair run: %v", err)
			}
			ledger.Close()
		}
	}

	return res
}

func exportActions(ctx *action.Context) []RepairAction {
	out := make([]RepairAction, 0, len(ctx.Actions))
	for _, a := range ctx.Actions {
		out = append(out, RepairAction{
			Stage:       string(a.Stage),
			Action:      a.Action,
			Position:    a.Position,
			Original:    a.Original,
			Replacement: a.Replacement,
		})
	}
	return out
}
