// Package analysis looks at how a single cell evolves over time.
//
//   - [PowerSpectrum]: magnitude spectrum of a sampled cell value
//   - [Dominant]: the strongest non-DC frequency in Hz
//
// The probe command uses it to report how fast a pattern pulses:
//
//	ps := analysis.PowerSpectrum(samples)
//	hz := analysis.Dominant(ps, dt)
package analysis
