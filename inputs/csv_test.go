package inputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadRegionDemand(t *testing.T) {
	data := "region,demand\nNSW,100\nVIC,80.5\n"
	regions, err := ReadRegionDemand(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if regions[0].ID != "NSW" || regions[0].DemandMW != 100 {
		t.Fatalf("unexpected first region: %+v", regions[0])
	}
	if regions[1].DemandMW != 80.5 {
		t.Fatalf("unexpected demand: %v", regions[1].DemandMW)
	}
}

func TestReadGenerators(t *testing.T) {
	data := "region,generator_name,nameplate_capacity\nNSW,bayswater,2640\n"
	gens, err := ReadGenerators(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(gens) != 1 || gens[0].Name != "bayswater" || gens[0].Region != "NSW" || gens[0].CapacityMW != 2640 {
		t.Fatalf("unexpected generators: %+v", gens)
	}
}

func TestReadPriceLevels_PreservesOrder(t *testing.T) {
	data := "pricelevel\n300\n50\n120\n"
	bands, err := ReadPriceLevels(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []float64{300, 50, 120}
	for i, p := range want {
		if bands[i] != p {
			t.Fatalf("expected bands %v, got %v", want, bands)
		}
	}
}

func TestReadBids(t *testing.T) {
	data := "generator_name,pricelevel,bid_capacity\nbayswater,50,1000\nbayswater,120,1640\n"
	bids, err := ReadBids(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(bids) != 2 || bids[1].Price != 120 || bids[1].CapacityMW != 1640 {
		t.Fatalf("unexpected bids: %+v", bids)
	}
}

func TestReadInterconnectors(t *testing.T) {
	data := "interconnector_id,region_start,region_end,interconnector_capacity\nvni,NSW,VIC,1700\n"
	ics, err := ReadInterconnectors(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ics) != 1 || ics[0].ID != "vni" || ics[0].From != "NSW" || ics[0].To != "VIC" || ics[0].CapacityMW != 1700 {
		t.Fatalf("unexpected interconnectors: %+v", ics)
	}
}

func TestReadTable_HeaderMismatch(t *testing.T) {
	data := "region,load\nNSW,100\n"
	if _, err := ReadRegionDemand(strings.NewReader(data)); err == nil {
		t.Fatalf("expected header error")
	}
}

func TestReadTable_BadNumber(t *testing.T) {
	data := "region,demand\nNSW,plenty\n"
	_, err := ReadRegionDemand(strings.NewReader(data))
	if err == nil || !strings.Contains(err.Error(), "demand") {
		t.Fatalf("expected parse error naming the column, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"region_demand.csv":   "region,demand\nNSW,100\nVIC,80\n",
		"generators.csv":      "region,generator_name,nameplate_capacity\nNSW,bayswater,200\nVIC,loyyang,200\n",
		"pricelevel.csv":      "pricelevel\n50\n",
		"bids.csv":            "generator_name,pricelevel,bid_capacity\nbayswater,50,200\nloyyang,50,200\n",
		"interconnectors.csv": "interconnector_id,region_start,region_end,interconnector_capacity\nvni,NSW,VIC,50\n",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	m, err := Load(Paths{
		RegionDemand:    filepath.Join(dir, "region_demand.csv"),
		Generators:      filepath.Join(dir, "generators.csv"),
		PriceLevels:     filepath.Join(dir, "pricelevel.csv"),
		Bids:            filepath.Join(dir, "bids.csv"),
		Interconnectors: filepath.Join(dir, "interconnectors.csv"),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(m.Regions) != 2 || len(m.Generators) != 2 || len(m.PriceBands) != 1 || len(m.Bids) != 2 || len(m.Interconnectors) != 1 {
		t.Fatalf("unexpected market shape: %+v", m)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("loaded market invalid: %v", err)
	}
}

func TestLoad_InterconnectorsOptional(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"region_demand.csv": "region,demand\nNSW,100\n",
		"generators.csv":    "region,generator_name,nameplate_capacity\nNSW,bayswater,200\n",
		"pricelevel.csv":    "pricelevel\n50\n",
		"bids.csv":          "generator_name,pricelevel,bid_capacity\nbayswater,50,200\n",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	m, err := Load(Paths{
		RegionDemand: filepath.Join(dir, "region_demand.csv"),
		Generators:   filepath.Join(dir, "generators.csv"),
		PriceLevels:  filepath.Join(dir, "pricelevel.csv"),
		Bids:         filepath.Join(dir, "bids.csv"),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(m.Interconnectors) != 0 {
		t.Fatalf("expected no interconnectors, got %v", m.Interconnectors)
	}
}

func TestLoad_MissingMandatoryPath(t *testing.T) {
	if _, err := Load(Paths{RegionDemand: "demand.csv"}); err == nil {
		t.Fatalf("expected error for missing mandatory paths")
	}
}
