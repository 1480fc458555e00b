package bikeinfra

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func TestTagsFromOSM(t *testing.T) {
	tags := TagsFromOSM(osm.Tags{
		{Key: "amenity", Value: "bicycle_parking"},
		{Key: "capacity", Value: "12"},
	})
	assert.Equal(t, Tags{"amenity": "bicycle_parking", "capacity": "12"}, tags)
}

func TestTagsHasTag(t *testing.T) {
	tags := Tags{"cargobike": "designated", "covered": ""}
	assert.True(t, tags.HasTag("cargobike", "yes", "designated"))
	assert.False(t, tags.HasTag("cargobike", "yes"))
	assert.True(t, tags.HasTag("covered"))
	assert.False(t, tags.HasTag("covered", "yes"))
	assert.False(t, tags.HasTag("name"))
}

func TestTagsParseInt(t *testing.T) {
	tags := Tags{
		"capacity":      "120",
		"padded":        " 30 ",
		"maxspeed":      "50 mph",
		"socket:schuko": "",
		"negative":      "-3",
	}
	cases := []struct {
		key   string
		value int64
		ok    bool
	}{
		{"capacity", 120, true},
		{"padded", 30, true},
		{"maxspeed", 0, false},
		{"socket:schuko", 0, false},
		{"negative", -3, true},
		{"missing", 0, false},
	}
	for _, c := range cases {
		value, ok := tags.ParseInt(c.key)
		assert.Equal(t, c.ok, ok, "key %s", c.key)
		assert.Equal(t, c.value, value, "key %s", c.key)
		assert.Equal(t, c.value, tags.Long(c.key), "key %s", c.key)
	}
}

func TestTagsAttrValue(t *testing.T) {
	tags := Tags{"name": "Fahrradhaus", "fee": ""}
	assert.Equal(t, "Fahrradhaus", tags.attrValue("name"))
	assert.Equal(t, "", tags.attrValue("fee"))
	assert.Nil(t, tags.attrValue("operator"))
}
