// ABOUTME: Tests for the none-or-specific Choice union.
// ABOUTME: Verifies sentinel exclusion rules and JSON/YAML decoding.
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSelectNoneIsAlwaysSingleton(t *testing.T) {
	c := SpecificChoice(EquipDumbbells, EquipBench)
	c = c.SelectNone()

	assert.True(t, c.IsNone())
	assert.Empty(t, c.Items())
	assert.Equal(t, []string{"none"}, c.Strings(EquipmentNone))

	// Selecting none again keeps the singleton.
	c = c.SelectNone()
	assert.Equal(t, []string{"none"}, c.Strings(EquipmentNone))
}

func TestToggleWhileNoneDropsSentinel(t *testing.T) {
	c := NoneChoice[MedicalCondition]().Toggle("Asthma")

	assert.False(t, c.IsNone())
	assert.Equal(t, []string{"Asthma"}, c.Strings(MedicalConditionNone))
}

func TestToggleAddsAndRemoves(t *testing.T) {
	var c Choice[Equipment]
	assert.True(t, c.IsEmpty())

	c = c.Toggle(EquipBarbell).Toggle(EquipBench)
	assert.Equal(t, []Equipment{EquipBarbell, EquipBench}, c.Items())

	c = c.Toggle(EquipBarbell)
	assert.Equal(t, []Equipment{EquipBench}, c.Items())

	c = c.Toggle(EquipBench)
	assert.True(t, c.IsEmpty())
}

func TestChoiceIsImmutable(t *testing.T) {
	a := SpecificChoice(EquipBarbell)
	b := a.Toggle(EquipBench)

	assert.Equal(t, []Equipment{EquipBarbell}, a.Items())
	assert.Equal(t, []Equipment{EquipBarbell, EquipBench}, b.Items())
}

func TestChoiceJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantNone bool
		want     []Equipment
		wantErr  bool
	}{
		{"tagged none", `{"none":true}`, true, nil, false},
		{"tagged items", `{"items":["bench","barbell"]}`, false, []Equipment{EquipBench, EquipBarbell}, false},
		{"plain list", `["bench"]`, false, []Equipment{EquipBench}, false},
		{"plain list with sentinel", `["NONE"]`, true, nil, false},
		{"sentinel mixed with items", `["none","bench"]`, false, nil, true},
		{"empty list", `[]`, false, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Choice[Equipment]
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNone, c.IsNone())
			assert.Equal(t, len(tt.want), len(c.Items()))
			for _, e := range tt.want {
				assert.True(t, c.Has(e), "expected %s", e)
			}
		})
	}
}

func TestChoiceRoundTripThroughRecord(t *testing.T) {
	r := Record{Equipment: NoneChoice[Equipment](), MedicalConditions: SpecificChoice[MedicalCondition]("Asthma")}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equipment.IsNone())
	assert.True(t, got.MedicalConditions.Has("Asthma"))
}

func TestChoiceYAMLList(t *testing.T) {
	var r Record
	err := yaml.Unmarshal([]byte("equipment: [dumbbells, yoga_mat]\nmedicalConditions: [None]\n"), &r)
	require.NoError(t, err)

	assert.Equal(t, []Equipment{EquipDumbbells, EquipYogaMat}, r.Equipment.Items())
	assert.True(t, r.MedicalConditions.IsNone())
}

func TestRecordClone(t *testing.T) {
	r := Record{FocusAreas: []FocusArea{FocusAbs}, OneRM: &OneRM{Bench: "80"}}
	c := r.Clone()
	c.FocusAreas[0] = FocusLegs
	c.OneRM.Bench = "100"

	assert.Equal(t, FocusAbs, r.FocusAreas[0])
	assert.Equal(t, "80", r.OneRM.Bench)
}
