// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category represents a node in the category forest. ParentID is a weak
// reference to another category; nil marks a root. Categories with an
// unresolvable parent are treated as roots when the tree is built.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parentId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CategoryNode is a category together with its resolved children,
// returned by the tree endpoint.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}
