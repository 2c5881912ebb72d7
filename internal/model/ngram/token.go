package ngram

// Reserved sentinel tokens. They are ordinary tokens inside every counter:
// they accumulate counts and occupy vocabulary slots like any word.
const (
	// Start marks the implicit left context of a sentence's first word.
	Start = "<S>"
	// Stop marks the end of a sentence. It is appended to every training
	// and query sentence.
	Stop = "</S>"
	// Unknown is returned by samplers when the roulette walk exhausts the
	// vocabulary without covering the drawn sample.
	Unknown = "*UNKNOWN*"
)

// WithStop returns a copy of the sentence with the stop token appended.
func WithStop(sentence []string) []string {
	stopped := make([]string, 0, len(sentence)+1)
	stopped = append(stopped, sentence...)
	return append(stopped, Stop)
}

// WithBoundaries returns a copy of the sentence with the start token
// prepended and the stop token appended.
func WithBoundaries(sentence []string) []string {
	padded := make([]string, 0, len(sentence)+2)
	padded = append(padded, Start)
	padded = append(padded, sentence...)
	return append(padded, Stop)
}
