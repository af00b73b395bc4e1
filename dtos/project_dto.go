// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dtos

import (
	"time"

	"github.com/google/uuid"
)

// ProjectCreateRequest is sent as multipart form by the dashboard, json works as well.
type ProjectCreateRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	PageURL     string `json:"pageUrl" form:"pageUrl"`
}

// ProjectUpdateRequest leaves description and pageUrl untouched when they are not sent.
type ProjectUpdateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PageURL     *string `json:"pageUrl"`
}

type ProjectDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	PageURL     string     `json:"pageUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	IsActive    bool       `json:"isActive"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

type ProjectDeletedResponse struct {
	Message string     `json:"message"`
	Project ProjectDTO `json:"project"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
