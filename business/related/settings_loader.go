package related

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"relatedAttributes/domain"
	"relatedAttributes/pkg/logger"
)

// LoadSettings reads every settings blob from repo. Absent rows, repository
// failures and undecodable values fall back to the defaults of that blob.
func LoadSettings(ctx context.Context, repo OptionRepository) Settings {
	cfg := DefaultSettings()
	if repo == nil {
		return cfg
	}

	if raw, ok := loadOption(ctx, repo, domain.OptionAttributePriority); ok {
		priorities, err := DecodePriorities(raw)
		if err != nil {
			logger.Warn("attribute priority option is malformed, using defaults", "error", err)
		} else {
			cfg.Priorities = priorities
		}
	}

	if raw, ok := loadOption(ctx, repo, domain.OptionAttributeThreshold); ok {
		policy, err := DecodeThresholdPolicy(raw)
		if err != nil {
			logger.Warn("attribute threshold option is malformed, using defaults", "error", err)
		} else {
			cfg.Threshold = policy
		}
	}

	if raw, ok := loadOption(ctx, repo, domain.OptionRelationMethods); ok {
		methods, err := DecodeRelationMethods(raw)
		if err != nil {
			logger.Warn("relation methods option is malformed, using defaults", "error", err)
		} else {
			cfg.Methods = methods
		}
	}

	return cfg
}

func loadOption(ctx context.Context, repo OptionRepository, name string) ([]byte, bool) {
	opt, ok, err := repo.GetOption(ctx, name)
	if err != nil {
		logger.Warn("failed to load option, using defaults",
			"trace_id", TraceIDFromContext(ctx),
			"option", name,
			"error", err,
		)
		return nil, false
	}
	if !ok || len(opt.Value) == 0 {
		return nil, false
	}
	return opt.Value, true
}

// DecodePriorities parses the taxonomy → weight blob. Entries that are not
// numbers are dropped so the default weight applies; negatives read as 0.
func DecodePriorities(raw []byte) (domain.AttributePriorities, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	out := make(domain.AttributePriorities, len(fields))
	for taxonomy, v := range fields {
		w, ok := toInt(v)
		if !ok {
			continue
		}
		if w < 0 {
			w = 0
		}
		out[taxonomy] = w
	}
	return out, nil
}

// DecodeThresholdPolicy parses {enabled, threshold}. A missing threshold keeps
// the form default; the value itself is not range checked.
func DecodeThresholdPolicy(raw []byte) (domain.ThresholdPolicy, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return domain.ThresholdPolicy{}, err
	}

	policy := DefaultSettings().Threshold
	if v, ok := fields["enabled"]; ok {
		policy.Enabled = toBool(v)
	}
	if v, ok := fields["threshold"]; ok {
		if t, ok := toInt(v); ok {
			policy.Threshold = t
		}
	}
	return policy, nil
}

func DecodeRelationMethods(raw []byte) (domain.RelationMethods, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return domain.RelationMethods{}, err
	}

	methods := DefaultSettings().Methods
	if v, ok := fields["by_categories"]; ok {
		methods.ByCategories = toBool(v)
	}
	if v, ok := fields["by_tags"]; ok {
		methods.ByTags = toBool(v)
	}
	return methods, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode option: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		if f, err := t.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "yes", "true", "on":
			return true
		}
	}
	return false
}
