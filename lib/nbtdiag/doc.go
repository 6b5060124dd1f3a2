// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbtdiag renders tag trees as indented, human-readable text
// in the conventional TAG_Kind("name"): value form:
//
//	TAG_Compound("root"): 2 entries
//	{
//	  TAG_Int("x"): 42
//	  TAG_List("xs"): 3 entries of type TAG_Int
//	  {
//	    TAG_Int: 1
//	    TAG_Int: 2
//	    TAG_Int: 3
//	  }
//	}
//
// Output is plain text unless [Options.Color] is set, in which case
// kind labels, names, and values are styled through a lipgloss
// renderer. Long arrays are abbreviated after [Options.MaxItems]
// elements. The dump is for people; it is not parsed back.
package nbtdiag
