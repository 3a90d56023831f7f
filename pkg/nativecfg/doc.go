// SPDX-License-Identifier: MPL-2.0

// Package nativecfg models the JSON document emitted by the external
// configuration command (`react-native config` or an equivalent) on its
// standard output.
//
// The document maps dependency names to per-platform build metadata:
//
//	{
//	  "dependencies": {
//	    "pkg-a": {
//	      "platforms": {
//	        "android": {
//	          "sourceDir": "/x/pkg-a/android",
//	          "packageInstance": "new PkgAPackage()",
//	          "packageImportPath": "import com.pkga.PkgAPackage;"
//	        }
//	      }
//	    }
//	  }
//	}
//
// Parse validates the structural shape against an embedded CUE schema and
// preserves the order in which dependencies appear in the document; that
// order drives the determinism of everything generated downstream. Fields
// outside the known shape are ignored, and a dependency without an android
// platform block is represented with a nil Android pointer rather than
// being dropped here — filtering is the resolver's decision, not the
// parser's.
package nativecfg
