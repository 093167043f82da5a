package repositories

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
)

// Claves de caché para los listados completos
const (
	PropertiesListKey   = "dibs:properties:all"
	ReservationsListKey = "dibs:reservations:all"
)

const (
	localTTL     = 1 * time.Minute
	memcachedTTL = int32(5 * 60) // segundos
)

// CacheRepository define la interfaz para operaciones de caché.
// Los valores son el JSON ya serializado del listado.
//
// Cada clave tiene una versión que Delete incrementa. Un lector toma la versión
// antes de ir a la base y guarda con SetIfVersion: si hubo una escritura en el medio
// el listado viejo no se guarda.
type CacheRepository interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Version(key string) uint64
	SetIfVersion(key string, value []byte, version uint64) bool
	Delete(key string)
	Close()
}

// cacheRepository implementa CacheRepository con dos niveles:
// ccache en memoria y Memcached compartido (opcional)
type cacheRepository struct {
	localCache      *ccache.Cache[[]byte]
	memcachedClient *memcache.Client

	mu       sync.Mutex
	versions map[string]uint64
}

// NewCacheRepository crea el caché. Con memcachedHost vacío solo se usa el nivel local.
func NewCacheRepository(memcachedHost string) CacheRepository {
	localCache := ccache.New(ccache.Configure[[]byte]().MaxSize(100))

	var client *memcache.Client
	if memcachedHost != "" {
		client = memcache.New(memcachedHost)
		log.Printf("Cache repository initialized with Memcached at %s", memcachedHost)
	} else {
		log.Printf("Cache repository initialized (local only)")
	}

	return &cacheRepository{
		localCache:      localCache,
		memcachedClient: client,
		versions:        make(map[string]uint64),
	}
}

// Get obtiene datos del caché (primero local, luego Memcached)
func (r *cacheRepository) Get(key string) ([]byte, bool) {
	item := r.localCache.Get(key)
	if item != nil && !item.Expired() {
		log.Printf("Cache HIT (local): key=%s", key)
		return item.Value(), true
	}

	if r.memcachedClient == nil {
		return nil, false
	}

	version := r.Version(key)
	memcachedItem, err := r.memcachedClient.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		}
		return nil, false
	}

	// Guardar en caché local para próximas consultas
	r.mu.Lock()
	if r.versions[key] == version {
		r.localCache.Set(key, memcachedItem.Value, localTTL)
	}
	r.mu.Unlock()
	log.Printf("Cache HIT (Memcached): key=%s, stored in local cache", key)

	return memcachedItem.Value, true
}

// Set guarda datos en ambos niveles de caché sin mirar la versión
func (r *cacheRepository) Set(key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(key, value)
}

// Version devuelve la versión actual de la clave
func (r *cacheRepository) Version(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.versions[key]
}

// SetIfVersion guarda solo si nadie invalidó la clave desde que se leyó version
func (r *cacheRepository) SetIfVersion(key string, value []byte, version uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.versions[key] != version {
		log.Printf("Cache SET skipped, key invalidated during read: key=%s", key)
		return false
	}
	r.set(key, value)
	return true
}

func (r *cacheRepository) set(key string, value []byte) {
	r.localCache.Set(key, value, localTTL)

	if r.memcachedClient == nil {
		return
	}
	err := r.memcachedClient.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: memcachedTTL,
	})
	if err != nil {
		log.Printf("Error setting cache in Memcached: key=%s, error=%v", key, err)
	}
}

// Delete elimina datos de ambos niveles de caché e incrementa la versión de la clave
func (r *cacheRepository) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.versions[key]++
	r.localCache.Delete(key)

	if r.memcachedClient == nil {
		return
	}
	if err := r.memcachedClient.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		log.Printf("Error deleting from Memcached: key=%s, error=%v", key, err)
	}
}

// Close detiene el worker de ccache
func (r *cacheRepository) Close() {
	r.localCache.Stop()
}
