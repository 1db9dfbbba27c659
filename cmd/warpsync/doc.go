// Command warpsync aligns two feature sequences (for example chroma frames of
// two performances of the same piece) with dynamic time warping and prints
// the warping path as frame indices and time offsets.
//
//	warpsync align slow.json fast.json
//	warpsync distance slow.json fast.json --metric euclidean
//	warpsync synth --frames 300 --stretch 1.25 -o slow.json
//	warpsync config init
//
// Feature files hold {"time_step": seconds, "frames": [[...], ...]}.
package main
