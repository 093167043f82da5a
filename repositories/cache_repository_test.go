package repositories

import (
	"testing"
)

func TestCacheRepository_LocalOnly(t *testing.T) {
	cache := NewCacheRepository("")
	defer cache.Close()

	if _, found := cache.Get(PropertiesListKey); found {
		t.Fatal("Expected miss on empty cache")
	}

	cache.Set(PropertiesListKey, []byte(`[{"id":"1"}]`))

	value, found := cache.Get(PropertiesListKey)
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if string(value) != `[{"id":"1"}]` {
		t.Errorf("Unexpected cached value %s", value)
	}

	cache.Delete(PropertiesListKey)
	if _, found := cache.Get(PropertiesListKey); found {
		t.Error("Expected miss after Delete")
	}
}

func TestCacheRepository_KeysAreIndependent(t *testing.T) {
	cache := NewCacheRepository("")
	defer cache.Close()

	cache.Set(PropertiesListKey, []byte("[]"))
	cache.Set(ReservationsListKey, []byte("[1]"))
	cache.Delete(PropertiesListKey)

	if _, found := cache.Get(ReservationsListKey); !found {
		t.Error("Deleting one key must not evict the other")
	}
}

func TestCacheRepository_SetIfVersionSkipsAfterDelete(t *testing.T) {
	cache := NewCacheRepository("")
	defer cache.Close()

	// Un lector toma la versión, una escritura invalida, el lector intenta guardar
	version := cache.Version(PropertiesListKey)
	cache.Delete(PropertiesListKey)

	if cache.SetIfVersion(PropertiesListKey, []byte("[]"), version) {
		t.Fatal("Expected SetIfVersion to refuse a stale version")
	}
	if _, found := cache.Get(PropertiesListKey); found {
		t.Error("Stale listing must not be cached")
	}

	if !cache.SetIfVersion(PropertiesListKey, []byte("[]"), cache.Version(PropertiesListKey)) {
		t.Fatal("Expected SetIfVersion to store with the current version")
	}
	if _, found := cache.Get(PropertiesListKey); !found {
		t.Error("Expected hit after SetIfVersion")
	}
}

func TestCacheRepository_VersionsArePerKey(t *testing.T) {
	cache := NewCacheRepository("")
	defer cache.Close()

	before := cache.Version(ReservationsListKey)
	cache.Delete(PropertiesListKey)

	if cache.Version(ReservationsListKey) != before {
		t.Error("Deleting one key must not change the version of another")
	}
	if cache.Version(PropertiesListKey) == 0 {
		t.Error("Expected Delete to advance the version")
	}
}
