package config

import "reflect"

func configsEqual(a, b ExpandedXentBenchmarkConfig) bool {
	return reflect.DeepEqual(a, b)
}
