// Package capture exports hardware captures to segmented measurement files.
//
// A capture consists of an optional DAC output waveform ("out") and an ADC
// input capture ("in"). [Write] normalizes both to their storage types and
// writes them into a single group of a TDMS file: the first segment holds
// the file, group and "out" objects together with the first chunk of "in",
// and each following segment appends one more chunk of "in". Chunking
// bounds the size of each write call regardless of capture length.
//
// # Sources
//
// Inputs are accepted through the [Source] interface:
//
//	capture.Samples[int16](adc)       // typed slice
//	capture.Grid[float32](frames)     // [][]T, flattened row-major
//	capture.Bytes(raw)                // untyped bytes, reinterpreted
//
// Typed sources whose element type differs from the requested storage type
// are cast element by element with Go conversion rules. Untyped bytes are
// reinterpreted without copying; a trailing partial element is dropped with
// a warning.
//
// # Usage
//
//	path, err := capture.Write(
//	    capture.Samples[int16](dac), capture.Samples[int16](adc),
//	    4.9152e9, 4.9152e9,
//	    capture.WithFilename("sweep"),
//	    capture.WithProperties(map[string]any{"nco_mhz": 1250.0}),
//	)
//
// # Formats
//
// The container is chosen from a registry of [Format] implementations. The
// "tdms" format is registered by this package; [ErrFormatUnavailable] is
// returned before any file system change when a requested format has not
// been registered.
package capture
