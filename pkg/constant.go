package pkg

const (
	INF_WEIGHT float64 = 1e15

	// BPR cost function shape parameters (Bureau of Public Roads, 1964).
	DEFAULT_BPR_ALPHA = 0.15
	DEFAULT_BPR_BETA  = 4.0

	DEFAULT_MSA_ITERS = 30

	// fallbacks used when OSM tags are missing or unparseable
	DEFAULT_SPEED_KPH         = 40.0
	MIN_SPEED_KPH             = 5.0
	DEFAULT_EDGE_LENGTH_M     = 50.0
	DEFAULT_LANES             = 1.0
	DEFAULT_LANE_CAPACITY_VPH = 900.0

	// synthetic OD demand defaults
	DEFAULT_OD_PAIRS   = 250
	DEFAULT_MIN_DEMAND = 50.0
	DEFAULT_MAX_DEMAND = 150.0
	DEFAULT_OD_SEED    = 42

	DEFAULT_TOP_BOTTLENECKS = 20
)

const (
	KPH_TO_MPS = 1000.0 / 3600.0
)
