package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	assert.Equal(t, NewFloat(1500), ParseFloat("1500"))
	assert.Equal(t, NewFloat(-0.5), ParseFloat(" -0.5 "))
	assert.False(t, ParseFloat("").Valid)
	assert.False(t, ParseFloat("no-es-numero").Valid)
}

func TestNullFloatOr(t *testing.T) {
	assert.Equal(t, 7.0, NewFloat(7).Or(0))
	assert.Equal(t, 3.0, NullFloat{}.Or(3))
}

func TestNullMarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Name  NullString `json:"name"`
		Price NullFloat  `json:"price"`
	}{Name: NewString("Yerba"), Price: NullFloat{}})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"Yerba","price":null}`, string(b))
}

func TestNullUnmarshalJSON(t *testing.T) {
	var v struct {
		Name  NullString `json:"name"`
		Price NullFloat  `json:"price"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"name":null,"price":1500}`), &v))
	assert.False(t, v.Name.Valid)
	assert.Equal(t, NewFloat(1500), v.Price)
}
