package ftltest

import "fmt"

// MapConfig is an in-memory ftl.Config for tests: values are looked up by
// "section/key" and type-asserted on read, panicking with a clear message
// on a missing or mistyped key (mirroring the fatal-on-misconfiguration
// contract real Config adapters must honour).
type MapConfig map[string]interface{}

func (m MapConfig) lookup(section, key string) interface{} {
	v, ok := m[section+"/"+key]
	if !ok {
		panic(fmt.Sprintf("ftltest: missing config key %s/%s", section, key))
	}
	return v
}

func (m MapConfig) ReadInt(section, key string) int64 {
	return int64(m.lookup(section, key).(int))
}

func (m MapConfig) ReadUint(section, key string) uint64 {
	switch v := m.lookup(section, key).(type) {
	case uint64:
		return v
	case int:
		return uint64(v)
	default:
		panic(fmt.Sprintf("ftltest: %s/%s is not numeric", section, key))
	}
}

func (m MapConfig) ReadFloat(section, key string) float64 {
	return m.lookup(section, key).(float64)
}

func (m MapConfig) ReadBool(section, key string) bool {
	return m.lookup(section, key).(bool)
}
