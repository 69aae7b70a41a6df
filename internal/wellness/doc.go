// Package wellness stores daily employee check-ins and returns
// threshold-based advice.
//
// A check-in carries three 1-10 scores (mood, energy, stress). Advice
// is computed at submission time and stored alongside the record:
// stress above 7, energy below 4 and mood below 5 each add one
// suggestion. The package deliberately stops at these thresholds;
// richer heuristics belong to a wellness product, not the facility
// core.
package wellness
