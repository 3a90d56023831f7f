// SPDX-License-Identifier: MPL-2.0

package nativecfg

import (
	"errors"
	"fmt"
	"testing"
)

const fixtureThreeDeps = `{
  "root": "/work/app",
  "dependencies": {
    "react-native-webview": {
      "platforms": {
        "android": {
          "sourceDir": "/work/app/node_modules/react-native-webview/android",
          "packageInstance": "new RNCWebViewPackage()",
          "packageImportPath": "import com.reactnativecommunity.webview.RNCWebViewPackage;"
        },
        "ios": {"podspecPath": "/work/app/node_modules/react-native-webview/react-native-webview.podspec"}
      }
    },
    "js-only-lib": {
      "platforms": {}
    },
    "@scope/native-thing": {
      "platforms": {
        "android": {
          "sourceDir": "/work/app/node_modules/@scope/native-thing/android",
          "packageInstance": "new NativeThingPackage()",
          "packageImportPath": "import com.scope.nativething.NativeThingPackage;"
        }
      }
    }
  }
}`

func TestParse_PreservesDependencyOrder(t *testing.T) {
	cfg, err := Parse([]byte(fixtureThreeDeps), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantOrder := []string{"react-native-webview", "js-only-lib", "@scope/native-thing"}
	if len(cfg.Dependencies) != len(wantOrder) {
		t.Fatalf("len(Dependencies) = %d, want %d", len(cfg.Dependencies), len(wantOrder))
	}
	for i, want := range wantOrder {
		if cfg.Dependencies[i].Name != want {
			t.Errorf("Dependencies[%d].Name = %q, want %q", i, cfg.Dependencies[i].Name, want)
		}
	}
}

func TestParse_OrderStableAcrossCalls(t *testing.T) {
	first, err := Parse([]byte(fixtureThreeDeps), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Parse([]byte(fixtureThreeDeps), "test fixture")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		for j := range first.Dependencies {
			if again.Dependencies[j].Name != first.Dependencies[j].Name {
				t.Fatalf("run %d: Dependencies[%d].Name = %q, want %q",
					i, j, again.Dependencies[j].Name, first.Dependencies[j].Name)
			}
		}
	}
}

func TestParse_AndroidFields(t *testing.T) {
	cfg, err := Parse([]byte(fixtureThreeDeps), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	dep := cfg.Dependencies[0]
	if !dep.HasAndroid() {
		t.Fatal("HasAndroid() = false, want true")
	}
	android := dep.Platforms.Android
	if android.SourceDir != "/work/app/node_modules/react-native-webview/android" {
		t.Errorf("SourceDir = %q", android.SourceDir)
	}
	if android.PackageInstance != "new RNCWebViewPackage()" {
		t.Errorf("PackageInstance = %q", android.PackageInstance)
	}
	if android.PackageImportPath != "import com.reactnativecommunity.webview.RNCWebViewPackage;" {
		t.Errorf("PackageImportPath = %q", android.PackageImportPath)
	}
}

func TestParse_NoAndroidPlatform(t *testing.T) {
	cfg, err := Parse([]byte(fixtureThreeDeps), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Dependencies[1].HasAndroid() {
		t.Error("js-only-lib: HasAndroid() = true, want false")
	}
	if cfg.Dependencies[1].Platforms.Android != nil {
		t.Errorf("js-only-lib: Android = %+v, want nil", cfg.Dependencies[1].Platforms.Android)
	}
}

func TestParse_AndroidWithoutSourceDir(t *testing.T) {
	input := `{"dependencies":{"half-configured":{"platforms":{"android":{"packageInstance":"new X()"}}}}}`
	cfg, err := Parse([]byte(input), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Dependencies[0].HasAndroid() {
		t.Error("HasAndroid() = true for android block without sourceDir, want false")
	}
}

func TestParse_EmptyVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"null dependencies", `{"dependencies": null}`},
		{"empty dependencies", `{"dependencies": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input), "test fixture")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(cfg.Dependencies) != 0 {
				t.Errorf("len(Dependencies) = %d, want 0", len(cfg.Dependencies))
			}
		})
	}
}

func TestParse_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `error: command not found`},
		{"empty input", ``},
		{"truncated", `{"dependencies": {"a": {`},
		{"top-level array", `[1, 2, 3]`},
		{"trailing garbage", `{} {}`},
		{"empty dependency name", `{"dependencies": {"": {"platforms": {}}}}`},
		{"dependencies not an object", `{"dependencies": 42}`},
		{"android not an object", `{"dependencies": {"a": {"platforms": {"android": "yes"}}}}`},
		{"sourceDir not a string", `{"dependencies": {"a": {"platforms": {"android": {"sourceDir": 7}}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "test fixture")
			if err == nil {
				t.Fatal("Parse() error = nil, want MalformedConfigError")
			}
			var malformed *MalformedConfigError
			if !errors.As(err, &malformed) {
				t.Fatalf("Parse() error = %T (%v), want *MalformedConfigError", err, err)
			}
			if malformed.Source != "test fixture" {
				t.Errorf("Source = %q, want %q", malformed.Source, "test fixture")
			}
		})
	}
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	input := `{
	  "project": {"ios": {}, "android": {"sourceDir": "/work/app/android"}},
	  "dependencies": {
	    "lib": {
	      "name": "lib",
	      "root": "/work/app/node_modules/lib",
	      "platforms": {
	        "android": {
	          "sourceDir": "/x",
	          "packageInstance": "new LibPackage()",
	          "packageImportPath": "import com.lib.LibPackage;",
	          "buildTypes": [],
	          "dependencyConfiguration": null
	        }
	      }
	    }
	  },
	  "commands": []
	}`
	cfg, err := Parse([]byte(input), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Dependencies) != 1 || cfg.Dependencies[0].Name != "lib" {
		t.Fatalf("Dependencies = %+v, want single entry 'lib'", cfg.Dependencies)
	}
}

func TestParse_ManyDependenciesOrdered(t *testing.T) {
	// Enough entries that map iteration order would almost certainly
	// scramble them if the decoder went through a map.
	var input string
	input = `{"dependencies":{`
	for i := 0; i < 40; i++ {
		if i > 0 {
			input += ","
		}
		input += fmt.Sprintf(`"dep-%02d":{"platforms":{"android":{"sourceDir":"/m/%02d"}}}`, i, i)
	}
	input += `}}`

	cfg, err := Parse([]byte(input), "test fixture")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Dependencies) != 40 {
		t.Fatalf("len(Dependencies) = %d, want 40", len(cfg.Dependencies))
	}
	for i, dep := range cfg.Dependencies {
		if want := fmt.Sprintf("dep-%02d", i); dep.Name != want {
			t.Fatalf("Dependencies[%d].Name = %q, want %q", i, dep.Name, want)
		}
	}
}

func TestMalformedConfigError_Message(t *testing.T) {
	err := &MalformedConfigError{Source: "yarn react-native config", Err: errors.New("boom")}
	want := "malformed native module configuration from yarn react-native config: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, err.Err) {
		t.Error("errors.Is() should reach the wrapped cause")
	}
}
