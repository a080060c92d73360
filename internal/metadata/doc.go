// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package metadata provides the Go representation of organization-wide
// project metadata defaults and the builders used to declare them.
//
// # Core Concepts
//
//   - Containers: List and Singleton accumulate the repeatable groups
//     (licenses, developers, mailing lists) and the replace-on-write groups
//     (organization, issue management, scm) while a declaration is open.
//
//   - Declaration: the mutable builder a root settings file populates. It
//     holds the scalar fields plus one container per group.
//
//   - Document: the snapshot taken from a Declaration. Documents are plain
//     values; once handed to the registry they are never mutated, and every
//     reader receives its own deep copy.
//
// An unset scalar is the empty string. A nil group slice means the group was
// never declared, while a non-nil empty slice means it was declared with no
// entries. That distinction is what lets a consumer replace an inherited list
// with an empty one.
package metadata
