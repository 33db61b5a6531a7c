// Package block provides the InsectBot Hexa block family: each variant emits
// one fixed fragment of Arduino C++ when a visual program is translated.
package block

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownKind indicates a wire name with no matching block variant.
var ErrUnknownKind = errors.New("unknown block kind")

// Kind identifies a block variant by its wire name.
type Kind string

// Kind values for the InsectBot Hexa robot.
const (
	KindGetDistance        Kind = "insectbot_hexa_get_distance"
	KindGetBrightnessLeft  Kind = "insectbot_hexa_get_brightness_left"
	KindGetBrightnessRight Kind = "insectbot_hexa_get_brightness_right"
	KindIsBrightnessEqual  Kind = "insectbot_hexa_is_brightness_equal"
	KindIsBrighterOnLeft   Kind = "insectbot_hexa_is_brighter_on_left"
	KindIsBrighterOnRight  Kind = "insectbot_hexa_is_brighter_on_right"
	KindIsInDanger         Kind = "insectbot_hexa_is_in_danger"
	KindRunMode            Kind = "insectbot_hexa_run_mode"
	KindWalkMode           Kind = "insectbot_hexa_walk_mode"
	KindGoForward          Kind = "insectbot_hexa_go_forward"
	KindGoBackward         Kind = "insectbot_hexa_go_backward"
	KindTurnLeft           Kind = "insectbot_hexa_turn_left"
	KindTurnRight          Kind = "insectbot_hexa_turn_right"
)

// Genus says where a block may be placed in a program.
type Genus string

// Genus values.
const (
	// GenusValue blocks plug into sockets and yield an expression.
	GenusValue Genus = "value"
	// GenusCommand blocks stand alone as statements.
	GenusCommand Genus = "command"
)

// ValueType is the C++ type produced by a value block.
type ValueType string

// ValueType values.
const (
	ValueNone    ValueType = ""
	ValueNumber  ValueType = "number"
	ValueBoolean ValueType = "boolean"
)

type variant struct {
	label     string
	template  string
	genus     Genus
	valueType ValueType
}

var variants = map[Kind]variant{
	KindGetDistance:        {"get distance", "insect.getDistanceFromObstacle()", GenusValue, ValueNumber},
	KindGetBrightnessLeft:  {"get brightness left", "insect.getBrightnessOnLeft()", GenusValue, ValueNumber},
	KindGetBrightnessRight: {"get brightness right", "insect.getBrightnessOnRight()", GenusValue, ValueNumber},
	KindIsBrightnessEqual:  {"is brightness equal", "insect.isBrightnessEqual()", GenusValue, ValueBoolean},
	KindIsBrighterOnLeft:   {"is brighter on left", "insect.isBrighterOnLeft()", GenusValue, ValueBoolean},
	KindIsBrighterOnRight:  {"is brighter on right", "insect.isBrighterOnRight()", GenusValue, ValueBoolean},
	KindIsInDanger:         {"is in danger", "insect.isInDanger()", GenusValue, ValueBoolean},
	KindRunMode:            {"run mode", "insect.runMode();\n", GenusCommand, ValueNone},
	KindWalkMode:           {"walk mode", "insect.walkMode();\n", GenusCommand, ValueNone},
	KindGoForward:          {"go forward", "insect.goForward();\n", GenusCommand, ValueNone},
	KindGoBackward:         {"go backward", "insect.goBackward();\n", GenusCommand, ValueNone},
	KindTurnLeft:           {"turn left", "insect.turnLeft();\n", GenusCommand, ValueNone},
	KindTurnRight:          {"turn right", "insect.turnRight();\n", GenusCommand, ValueNone},
}

// String returns the wire name.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k names a known variant.
func (k Kind) Valid() bool {
	_, ok := variants[k]
	return ok
}

// Template returns the fixed text the variant emits.
func (k Kind) Template() string { return variants[k].template }

// Label returns the display label shown on the block.
func (k Kind) Label() string { return variants[k].label }

// Genus returns where the variant may be placed.
func (k Kind) Genus() Genus { return variants[k].genus }

// ValueType returns the expression type of a value variant.
func (k Kind) ValueType() ValueType { return variants[k].valueType }

// ParseKind resolves a wire name, ignoring case and surrounding space.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}

// Spec describes one variant for catalogue listings.
type Spec struct {
	Kind      Kind
	Label     string
	Genus     Genus
	ValueType ValueType
	Template  string
}

// Catalog returns every variant sorted by wire name.
func Catalog() []Spec {
	result := make([]Spec, 0, len(variants))
	for k, v := range variants {
		result = append(result, Spec{
			Kind:      k,
			Label:     v.label,
			Genus:     v.genus,
			ValueType: v.valueType,
			Template:  v.template,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})
	return result
}
