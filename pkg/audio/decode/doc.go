// ABOUTME: Audio decoder package
// ABOUTME: Turns wav/mp3/flac/opus containers into seekable PCM streams
// Package decode turns audio containers into seekable 16-bit PCM streams.
//
// Supported codecs: wav (uncompressed 16-bit PCM), mp3, flac, and ogg/opus.
// The wav and mp3 decoders read from their source on demand and suit
// long-form streaming; flac and opus decode fully into memory when opened.
//
//	f, _ := os.Open("music.mp3")
//	stream, err := decode.Open(f, decode.CodecForPath("music.mp3"))
package decode
