// Package domain models cryogenic phase-change materials (PCMs) and the
// polynomial property curves attached to them.
//
// # Data Sources
//
// Two comma-separated tables feed the catalog:
//
//	pcms.csv           header-driven; id, name, tmin, tmax, latentHeat,
//	                   meltingPointK, boilingPointK, flashPointK, cost,
//	                   safetyRating (column order is free)
//	property_data.csv  positional; pcmId, name, propertyType, a, b, c,
//	                   tmin, tmax (header line is skipped, not read)
//
// # Missing Numbers
//
// A numeric cell that does not parse is not an error and is not zero. It
// becomes a missing [Measure]. Every comparison involving a missing measure
// fails, which is what keeps half-filled rows out of temperature searches.
//
// # Temperature Search
//
// A [Window] [lo, hi] admits a PCM when
//
//	lo <= meltingPointK <= hi   and   boilingPointK > hi
//
// i.e. the material changes phase inside the range and does not boil
// within it. An incomplete or inverted window filters nothing.
//
// # Property Curves
//
// Each [PropertyDefinition] stores value(T) = a·T² + b·T + c over
// [tmin, tmax]. [Evaluate] samples it at every integer kelvin between the
// rounded bounds. Failures (no selection, no data, unknown pair, unusable
// coefficients) come back as a [CurveOutcome] so the caller can always render
// something.
package domain
