package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"dibs-api/config"
	"dibs-api/controllers"
	"dibs-api/events"
	"dibs-api/middleware"
	"dibs-api/repositories"
	"dibs-api/routes"
	"dibs-api/services"
	"dibs-api/utils"

	"github.com/gin-gonic/gin"
)

// App es el ciclo de vida del servicio: store, caché, bus de eventos y servidor HTTP
type App struct {
	cfg *config.Config

	// openStore se puede reemplazar en tests
	openStore func(ctx context.Context, cfg *config.Config) (repositories.Store, error)

	mu        sync.Mutex
	store     repositories.Store
	cache     repositories.CacheRepository
	publisher events.Publisher
	consumer  *events.RabbitMQConsumer
	server    *http.Server
	listener  net.Listener
	done      chan error
}

// New crea la aplicación sin conectar nada todavía
func New(cfg *config.Config) *App {
	return &App{cfg: cfg, openStore: OpenStore}
}

// OpenStore conecta con el backend elegido por DB_DRIVER
func OpenStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		store, err := repositories.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMongo, "":
		store, err := repositories.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Start conecta el store y empieza a escuchar. Si el puerto no está disponible
// desconecta el store antes de devolver el error.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		return errors.New("app already started")
	}

	// a. Conectar el store
	store, err := a.openStore(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	// b. Caché de listados
	cache := repositories.NewCacheRepository(a.cfg.MemcachedHost)

	// c. Bus de eventos (opcional)
	publisher, consumer := a.startEvents(cache)

	// d. Escuchar
	listener, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := store.Close(closeCtx); cerr != nil {
			log.Printf("Error closing store: %v", cerr)
		}
		closeEvents(publisher, consumer)
		cache.Close()
		return fmt.Errorf("failed to listen on port %s: %w", a.cfg.Port, err)
	}

	a.store = store
	a.cache = cache
	a.publisher = publisher
	a.consumer = consumer
	a.listener = listener
	a.server = &http.Server{
		Handler:           NewRouter(a.cfg, store, cache, publisher),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.done = make(chan error, 1)

	// e. Servir en una goroutine
	go func(server *http.Server, done chan<- error) {
		log.Printf("Starting HTTP server on %s...", listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
		}
		close(done)
	}(a.server, a.done)

	return nil
}

// startEvents conecta publisher y consumer si hay RabbitMQ configurado.
// Si la conexión falla el servicio sigue sin eventos.
func (a *App) startEvents(cache repositories.CacheRepository) (events.Publisher, *events.RabbitMQConsumer) {
	if a.cfg.RabbitMQURL == "" {
		log.Println("RABBITMQ_URL not set, change events disabled")
		return events.NoopPublisher{}, nil
	}

	publisher, err := events.NewRabbitMQPublisher(a.cfg.RabbitMQURL, a.cfg.EventsQueue)
	if err != nil {
		log.Printf("Failed to create RabbitMQ publisher, change events disabled: %v", err)
		return events.NoopPublisher{}, nil
	}

	consumer, err := events.NewRabbitMQConsumer(a.cfg.RabbitMQURL, a.cfg.EventsQueue, InvalidateOnEvent(cache))
	if err != nil {
		log.Printf("Failed to create RabbitMQ consumer: %v", err)
		return publisher, nil
	}
	if err := consumer.Start(); err != nil {
		log.Printf("Error starting RabbitMQ consumer: %v", err)
		if cerr := consumer.Close(); cerr != nil {
			log.Printf("Error closing RabbitMQ consumer: %v", cerr)
		}
		return publisher, nil
	}
	log.Println("RabbitMQ consumer started")
	return publisher, consumer
}

// InvalidateOnEvent borra el listado en caché del recurso que cambió en otra réplica
func InvalidateOnEvent(cache repositories.CacheRepository) events.Handler {
	return func(event events.Event) error {
		switch event.Resource {
		case events.ResourceProperty:
			cache.Delete(repositories.PropertiesListKey)
		case events.ResourceReservation:
			cache.Delete(repositories.ReservationsListKey)
		default:
			return fmt.Errorf("unknown resource %q", event.Resource)
		}
		return nil
	}
}

// Addr devuelve la dirección en la que escucha el servidor
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Done se cierra cuando el servidor deja de servir; recibe el error si falló
func (a *App) Done() <-chan error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

// Close desconecta el store, apaga el servidor y cierra el bus de eventos, en ese orden.
// Devuelve el primer error encontrado; los pasos siguientes se ejecutan igual.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// 1. Store
	if err := a.store.Close(ctx); err != nil {
		log.Printf("Error closing store: %v", err)
		keep(err)
	} else {
		log.Println("Store closed successfully")
	}

	// 2. Servidor HTTP
	if err := a.server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
		keep(err)
	} else {
		log.Println("HTTP server shut down successfully")
	}

	// 3. Bus de eventos y caché
	keep(closeEvents(a.publisher, a.consumer))
	a.cache.Close()

	a.server = nil
	a.listener = nil
	return firstErr
}

func closeEvents(publisher events.Publisher, consumer *events.RabbitMQConsumer) error {
	var firstErr error
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Printf("Error closing RabbitMQ consumer: %v", err)
			firstErr = err
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing RabbitMQ publisher: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NewRouter arma el router HTTP con sus capas (repository -> service -> controller)
func NewRouter(cfg *config.Config, store repositories.Store, cache repositories.CacheRepository, publisher events.Publisher) *gin.Engine {
	router := gin.New()
	// "/x/" no redirige a "/x": cae en los 404 de routes
	router.RedirectTrailingSlash = false
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS(cfg.ClientOrigin))

	jwt := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Service: lógica de negocio
	userService := services.NewUserService(store.Users(), jwt)
	propertyService := services.NewPropertyService(store.Properties(), cache, publisher)
	reservationService := services.NewReservationService(store.Reservations(), cache, publisher)

	// Controller: maneja HTTP
	routes.Register(router, routes.Controllers{
		Users:        controllers.NewUserController(userService),
		Auth:         controllers.NewAuthController(userService),
		Properties:   controllers.NewPropertyController(propertyService),
		Reservations: controllers.NewReservationController(reservationService),
	}, jwt)

	return router
}
