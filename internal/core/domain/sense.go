package domain

// SenseID identifies a single sense (synset) in the ontology,
// e.g. "bank.n.01".
type SenseID string

// String returns the string representation.
func (s SenseID) String() string {
	return string(s)
}

// PartOfSpeech selects which candidate senses the ontology returns for a word.
type PartOfSpeech string

// Parts of speech understood by the ontology adapters.
const (
	Noun      PartOfSpeech = "n"
	Verb      PartOfSpeech = "v"
	Adjective PartOfSpeech = "a"
	Adverb    PartOfSpeech = "r"
)

// IsValid returns true if the part of speech is recognised.
func (p PartOfSpeech) IsValid() bool {
	switch p {
	case Noun, Verb, Adjective, Adverb:
		return true
	default:
		return false
	}
}

// Relation is a directed ontology relation between two senses.
type Relation string

// Relations the ontology exposes.
const (
	RelationHypernym         Relation = "hypernym"
	RelationHyponym          Relation = "hyponym"
	RelationInstanceHypernym Relation = "instance_hypernym"
	RelationInstanceHyponym  Relation = "instance_hyponym"
)

// Inverse returns the relation pointing the other way.
func (r Relation) Inverse() (Relation, bool) {
	switch r {
	case RelationHypernym:
		return RelationHyponym, true
	case RelationHyponym:
		return RelationHypernym, true
	case RelationInstanceHypernym:
		return RelationInstanceHyponym, true
	case RelationInstanceHyponym:
		return RelationInstanceHypernym, true
	default:
		return "", false
	}
}

// IsValid returns true if the relation is recognised.
func (r Relation) IsValid() bool {
	_, ok := r.Inverse()
	return ok
}

// EdgeType classifies how a related sense was reached from a candidate sense.
type EdgeType uint8

// Edge classifications, in increasing order of precedence when a sense is
// reachable in more than one way.
const (
	// EdgeSelf is the candidate sense itself.
	EdgeSelf EdgeType = iota
	// EdgeAncestor is reachable through hypernym or instance-hypernym closure.
	EdgeAncestor
	// EdgeDescendant is reachable through hyponym or instance-hyponym closure.
	EdgeDescendant
	// EdgeSibling shares an immediate parent with the candidate sense.
	EdgeSibling

	edgeTypeCount
)

// String returns the string representation.
func (t EdgeType) String() string {
	switch t {
	case EdgeSelf:
		return "self"
	case EdgeAncestor:
		return "ancestor"
	case EdgeDescendant:
		return "descendant"
	case EdgeSibling:
		return "sibling"
	default:
		return unknownDescription
	}
}

// EdgeWeights maps each edge classification to a distance weight.
type EdgeWeights [edgeTypeCount]float64

// DefaultEdgeWeights returns the default weight table: every classification
// weighs 1.0.
func DefaultEdgeWeights() EdgeWeights {
	return EdgeWeights{1.0, 1.0, 1.0, 1.0}
}

// Weight returns the weight for an edge classification.
// Unknown classifications weigh zero.
func (w EdgeWeights) Weight(t EdgeType) float64 {
	if t >= edgeTypeCount {
		return 0
	}
	return w[t]
}

// Sense describes a sense as stored in the ontology.
type Sense struct {
	// ID is the sense identifier.
	ID SenseID `json:"id"`

	// Offset is the stable ordering key from the sense inventory.
	Offset int64 `json:"offset"`

	// POS is the part of speech of the sense.
	POS PartOfSpeech `json:"pos"`

	// Lemmas are the surface words carrying this sense, in rank order.
	Lemmas []string `json:"lemmas,omitempty"`

	// Gloss is a short definition.
	Gloss string `json:"gloss,omitempty"`

	// Hypernyms are the immediate parents.
	Hypernyms []SenseID `json:"hypernyms,omitempty"`

	// InstanceHypernyms are the immediate instance-of parents.
	InstanceHypernyms []SenseID `json:"instance_hypernyms,omitempty"`
}
