// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package obfuscator is the top-level entry point of the redaction core.
// It snapshots the statement's financial figures, builds the replacement
// map, substitutes every view of the document, verifies integrity, and
// annotates the result. A call never fails: on any internal error the
// caller receives a well-formed fallback document with metadata.error
// set and metadata.obfuscated false, so downstream review UIs and batch
// pipelines always have something valid to render.
package obfuscator

import (
	"fmt"
	"time"

	"stmt-obfuscator/internal/document"
	"stmt-obfuscator/internal/integrity"
	"stmt-obfuscator/internal/observability"
	"stmt-obfuscator/internal/replacement"
	"stmt-obfuscator/internal/substitution"
)

// DefaultConfidenceThreshold keeps an entity unless the detector scored
// it below this value.
const DefaultConfidenceThreshold = 0.85

// Result pairs the obfuscated document with run details the report
// layer renders.
type Result struct {
	Document         *document.Document
	Replacements     replacement.Map
	Consistency      replacement.ConsistencyMap
	IntegrityChecked bool
	IntegrityOK      bool
	Snapshot         integrity.Snapshot
}

// Obfuscator applies PII masking to parsed statements. Replacement
// state is local to each Obfuscate call, so a single instance is safe
// for sequential reuse and separate instances can run concurrently.
type Obfuscator struct {
	threshold       float64
	observer        *observability.StandardObserver
	verifyIntegrity bool
}

// New creates an obfuscator with the given confidence threshold.
// Thresholds outside [0,1] fall back to the default.
func New(threshold float64, observer *observability.StandardObserver) *Obfuscator {
	if threshold < 0 || threshold > 1 {
		threshold = DefaultConfidenceThreshold
	}
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}
	return &Obfuscator{threshold: threshold, observer: observer, verifyIntegrity: true}
}

// SetIntegrityVerification toggles the advisory balance check.
func (o *Obfuscator) SetIntegrityVerification(enabled bool) {
	o.verifyIntegrity = enabled
}

// GetComponentName returns the component name for observability.
func (o *Obfuscator) GetComponentName() string {
	return "obfuscator"
}

// Obfuscate masks the given entities in the document and returns an
// independent obfuscated copy. The input document is never mutated.
// Obfuscate does not return an error: every failure degrades to the
// fallback document.
func (o *Obfuscator) Obfuscate(doc *document.Document, entities []document.PIIEntity) (result *Result) {
	finishTiming := o.observer.StartTiming(o.GetComponentName(), "obfuscate_document", "")

	defer func() {
		if r := recover(); r != nil {
			result = o.fallback(doc, fmt.Errorf("internal error: %v", r))
			finishTiming(false, map[string]interface{}{"error": fmt.Sprint(r)})
		}
	}()

	if doc == nil {
		result = o.fallback(nil, fmt.Errorf("document must not be nil"))
		finishTiming(false, nil)
		return result
	}
	if entities == nil {
		entities = []document.PIIEntity{}
	}

	step := o.startStep("snapshot")
	before := integrity.Extract(doc)
	step(true, "")

	obfuscated := doc.Clone()
	obfuscated.Normalize()

	step = o.startStep("build_replacement_map")
	builder := replacement.NewBuilder(o.threshold, o.observer)
	replacements, consistency := builder.Build(entities)
	step(true, fmt.Sprintf("%d replacements", len(replacements)))

	step = o.startStep("substitute")
	substitution.ApplyToDocument(obfuscated, replacements)
	step(true, "")

	checked, ok := false, true
	if o.verifyIntegrity {
		step = o.startStep("verify_integrity")
		checked = before.BeginningBalance != nil || before.EndingBalance != nil
		ok = integrity.Verify(before, obfuscated)
		step(ok, "")
	}
	if !ok {
		o.observer.LogOperation(observability.StandardObservabilityData{
			Component: o.GetComponentName(),
			Operation: "verify_integrity",
			Success:   false,
			Error:     "balance mismatch after obfuscation",
		})
	}

	obfuscated.Metadata["obfuscated"] = true
	obfuscated.Metadata["obfuscation_timestamp"] = time.Now().UTC().Format(time.RFC3339)
	obfuscated.Metadata["entities_obfuscated"] = len(replacements)

	finishTiming(true, map[string]interface{}{
		"entities_in":     len(entities),
		"replacement_map": len(replacements),
		"integrity_ok":    ok,
	})

	return &Result{
		Document:         obfuscated,
		Replacements:     replacements,
		Consistency:      consistency,
		IntegrityChecked: checked,
		IntegrityOK:      ok,
		Snapshot:         before,
	}
}

// startStep opens a debug trace step, or a no-op when tracing is off.
func (o *Obfuscator) startStep(name string) func(bool, string) {
	if o.observer.DebugObserver != nil {
		return o.observer.DebugObserver.StartStep(o.GetComponentName(), name, "")
	}
	return func(bool, string) {}
}

// fallback builds the minimal valid document returned when obfuscation
// cannot complete: original text untouched, nothing redacted, and the
// error preserved for diagnostics.
func (o *Obfuscator) fallback(doc *document.Document, err error) *Result {
	fullText := ""
	if doc != nil {
		fullText = doc.FullText
	}
	return &Result{
		Document: &document.Document{
			FullText: fullText,
			Metadata: map[string]any{
				"error":      err.Error(),
				"obfuscated": false,
			},
			TextBlocks: []document.TextBlock{},
		},
		Replacements: replacement.Map{},
		Consistency:  replacement.ConsistencyMap{},
	}
}
