package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestDistributionConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DistributionConfig
		wantErr error
	}{
		{
			name: "valid config",
			cfg:  testConfig(),
		},
		{
			name:    "empty priority",
			cfg:     DistributionConfig{},
			wantErr: ErrEmptyPriority,
		},
		{
			name: "negative threshold",
			cfg: DistributionConfig{
				StorePriority:    []string{storeGagarinsky},
				BalanceThreshold: -1,
			},
			wantErr: ErrInvalidThreshold,
		},
		{
			name: "duplicate store",
			cfg: DistributionConfig{
				StorePriority: []string{storeGagarinsky, storeGagarinsky},
			},
			wantErr: ErrDuplicateStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestActiveStoresPreservesOrder(t *testing.T) {
	cfg := testConfig()
	cfg.ExcludedStores = []string{storeKhimki}

	want := []string{storeGagarinsky, storeNevsky, storeBelaya}
	if got := cfg.ActiveStores(); !reflect.DeepEqual(got, want) {
		t.Errorf("active stores = %v, want %v", got, want)
	}
}

func TestReorderedLeavesOriginalUntouched(t *testing.T) {
	cfg := testConfig()
	original := append([]string(nil), cfg.StorePriority...)

	next := cfg.Reordered([]string{storeBelaya, storeGagarinsky})

	if !reflect.DeepEqual(cfg.StorePriority, original) {
		t.Error("Reordered mutated the receiver")
	}
	if !reflect.DeepEqual(next.StorePriority, []string{storeBelaya, storeGagarinsky}) {
		t.Errorf("reordered priority = %v", next.StorePriority)
	}
	if next.BalanceThreshold != cfg.BalanceThreshold {
		t.Error("Reordered dropped the threshold")
	}
}

func TestPartnerStoreResolvesByCodePrefix(t *testing.T) {
	cfg := testConfig()
	cfg.BalancePairs = []BalancePair{{A: "125007", B: "130143"}}

	tests := []struct {
		name  string
		store string
		want  string
		ok    bool
	}{
		{"pair side A", storeGagarinsky, storeKhimki, true},
		{"pair side B", storeKhimki, storeGagarinsky, true},
		{"unpaired store", storeNevsky, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.PartnerStore(tt.store)
			if ok != tt.ok || got != tt.want {
				t.Errorf("PartnerStore(%q) = %q, %v; want %q, %v", tt.store, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCheckConfigReportsMismatches(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 1, map[string]int{
			storeGagarinsky: 1,
			"999999 Unknown": 2,
		}),
	})
	cfg := DistributionConfig{StorePriority: []string{storeGagarinsky, storeKhimki}}

	warnings := CheckConfig(s, cfg)

	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	for _, w := range warnings {
		if w.Code != WarnConfigMismatch {
			t.Errorf("warning code = %q, want %q", w.Code, WarnConfigMismatch)
		}
		if w.RowIndex != -1 {
			t.Errorf("mismatch warnings are not row-scoped, got row %d", w.RowIndex)
		}
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.ExcludedStores = []string{storeBelaya}
	cfg.BalancePairs = []BalancePair{{A: "125007", B: "125016"}}

	data, err := EncodeConfigYAML(cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := ParseConfigYAML(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestParseConfigYAMLRejectsInvalid(t *testing.T) {
	if _, err := ParseConfigYAML([]byte("balance_threshold: 2\n")); !errors.Is(err, ErrEmptyPriority) {
		t.Errorf("error = %v, want %v", err, ErrEmptyPriority)
	}
}
