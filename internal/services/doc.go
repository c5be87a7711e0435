// Package services defines the shared error taxonomy for pipeline components.
//
// Sentinel markers classify failures so callers can decide between dropping an
// entry (soft failures like ErrNotFound and ErrMissingImage) and aborting the
// whole materialization run (ErrValidation, ErrConfiguration). Wrap attaches
// stage and operation context while keeping the marker reachable via errors.Is.
package services
