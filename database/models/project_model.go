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

package models

import (
	"time"
)

// Project groups scan results. The name is unique across active and archived projects.
// DeletedAt is a plain column and not gorm.DeletedAt: archived projects must stay
// readable for restore and for the name uniqueness check.
type Project struct {
	Model
	Name        string     `json:"name" gorm:"type:text;not null"`
	Slug        string     `json:"slug" gorm:"type:text"`
	Description string     `json:"description" gorm:"type:text;not null;default:''"`
	PageURL     string     `json:"pageUrl" gorm:"column:page_url;type:text;not null;default:''"`
	IsActive    bool       `json:"isActive" gorm:"not null;default:true"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

func (Project) TableName() string {
	return "projects"
}
