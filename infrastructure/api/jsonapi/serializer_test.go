package jsonapi

import (
	"encoding/json"
	"testing"

	"github.com/helixml/blockgen/application/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSketchResource(t *testing.T) {
	sketch := service.NewSketch("avoid", "void setup()\n{\n}\n",
		[]string{"InsectBotHexa.h", "Servo.h"}, []string{"InsectBotHexa insect;"}, 3)

	data, err := json.Marshal(NewSingleResponse(SketchResource(sketch)))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"data": {
			"type": "sketch",
			"id": "avoid",
			"attributes": {
				"name": "avoid",
				"source": "void setup()\n{\n}\n",
				"header_files": ["InsectBotHexa.h", "Servo.h"],
				"definitions": ["InsectBotHexa insect;"],
				"block_count": 3
			}
		}
	}`, string(data))
}

func TestBlockResources(t *testing.T) {
	blocks := service.NewSketches(nil, nil).Blocks()

	resources := BlockResources(blocks)

	require.Len(t, resources, len(blocks))
	first := resources[0]
	assert.Equal(t, TypeBlock, first.Type)
	assert.Equal(t, "insectbot_hexa_get_brightness_left", first.ID)
	assert.Equal(t, "/api/v1/blocks/insectbot_hexa_get_brightness_left", first.Links.Self)

	attrs, ok := first.Attributes.(BlockAttributes)
	require.True(t, ok)
	assert.Equal(t, "value", attrs.Genus)
	assert.Equal(t, "number", attrs.ValueType)
	assert.Equal(t, "insect.getBrightnessOnLeft()", attrs.Template)
	assert.False(t, attrs.Structural)
}

func TestNewListResponse_Empty(t *testing.T) {
	data, err := json.Marshal(NewListResponse(nil))
	require.NoError(t, err)

	assert.JSONEq(t, `{"data": [], "meta": {"count": 0}}`, string(data))
}

func TestNewErrorResponse(t *testing.T) {
	e := NewError("422", "Unprocessable Entity", "block 7: socket \"condition\" is not connected")
	e.Source = &ErrorSource{Pointer: "/data/attributes/program"}

	data, err := json.Marshal(NewErrorResponse(e))
	require.NoError(t, err)

	assert.JSONEq(t, `{"errors": [{
		"status": "422",
		"title": "Unprocessable Entity",
		"detail": "block 7: socket \"condition\" is not connected",
		"source": {"pointer": "/data/attributes/program"}
	}]}`, string(data))
}
