package model

// Assignment selects how a topic dimension contributes to the
// prediction: either a concrete sampled topic per dyad, or absent,
// in which case topics are integrated out under the sample's log
// topic distribution.
type Assignment struct {
	present bool
	topics  []uint32
}

// Assigned wraps sampled topics, one 1-based topic id per dyad
func Assigned(topics []uint32) Assignment {
	return Assignment{present: true, topics: topics}
}

// Integrated marks the topic dimension for marginalization
func Integrated() Assignment {
	return Assignment{}
}

func (this Assignment) Present() bool {
	return this.present
}

// sampled topic id of the e-th dyad, 1-based
func (this Assignment) Topic(e int) uint32 {
	return this.topics[e]
}
