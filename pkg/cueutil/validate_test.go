// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

var testSchema = []byte(`
#Settings: {
	name:     string
	replicas: int & >=0
	labels?: [string]: string
	...
}
`)

func TestValidate_Success(t *testing.T) {
	data := []byte(`{"name": "worker", "replicas": 3}`)
	if err := Validate(testSchema, data, "#Settings"); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_OpenStructAcceptsExtraFields(t *testing.T) {
	data := []byte(`{"name": "worker", "replicas": 3, "extra": true}`)
	if err := Validate(testSchema, data, "#Settings"); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	data := []byte(`{"name": "worker", "replicas": "three"}`)
	err := Validate(testSchema, data, "#Settings", WithFilename("settings.json"))
	if err == nil {
		t.Fatal("Validate() error = nil, want type mismatch")
	}
	if !strings.Contains(err.Error(), "settings.json") {
		t.Errorf("error %q should name the input", err)
	}
	if !strings.Contains(err.Error(), "replicas") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestValidate_BrokenInput(t *testing.T) {
	data := []byte(`{"name": `)
	if err := Validate(testSchema, data, "#Settings"); err == nil {
		t.Fatal("Validate() error = nil, want compile error")
	}
}

func TestValidate_UnknownSchemaPath(t *testing.T) {
	data := []byte(`{}`)
	err := Validate(testSchema, data, "#NoSuchDef")
	if err == nil {
		t.Fatal("Validate() error = nil, want schema lookup failure")
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("error %q should be flagged as internal", err)
	}
}

func TestValidate_MaxFileSize(t *testing.T) {
	data := []byte(`{"name": "worker", "replicas": 1}`)
	err := Validate(testSchema, data, "#Settings", WithMaxFileSize(4), WithFilename("big.json"))
	if err == nil {
		t.Fatal("Validate() error = nil, want size limit error")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error %q should mention the size limit", err)
	}
}

func TestValidate_ConcreteRequiresAllFields(t *testing.T) {
	data := []byte(`{"replicas": 3}`)
	if err := Validate(testSchema, data, "#Settings", WithConcrete()); err == nil {
		t.Fatal("Validate() error = nil, want missing concrete value")
	}
}

func TestValidateAndDecode(t *testing.T) {
	type settings struct {
		Name     string `json:"name"`
		Replicas int    `json:"replicas"`
	}

	got, err := ValidateAndDecode[settings](testSchema, []byte(`{"name": "worker", "replicas": 2}`), "#Settings")
	if err != nil {
		t.Fatalf("ValidateAndDecode() error = %v", err)
	}
	if got.Name != "worker" || got.Replicas != 2 {
		t.Errorf("decoded = %+v, want {worker 2}", got)
	}
}

func TestCheckFileSize(t *testing.T) {
	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckFileSize(10, max 10) = %v, want nil", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("CheckFileSize(11, max 10) = nil, want error")
	}
}
