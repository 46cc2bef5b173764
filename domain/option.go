package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.options (
//     name        TEXT PRIMARY KEY,
//     value       JSONB NOT NULL,
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

const (
	OptionAttributePriority  = "related_attribute_priority"
	OptionAttributeThreshold = "related_attribute_threshold"
	OptionRelationMethods    = "related_relation_methods"
)

type Option struct {
	Name      string         `gorm:"column:name;primaryKey" json:"name"`
	Value     datatypes.JSON `gorm:"column:value;type:jsonb" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Option) TableName() string {
	return "options"
}
