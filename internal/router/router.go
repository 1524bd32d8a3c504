package router

import (
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/config"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/handler"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/infra"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/middleware"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/repository"
	"github.com/Alvarezzzzz/charlotte-seguridad/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil; the restaurant config is then read from the store every time.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origins(), cfg.AnyOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTExpiresIn)
	restauranteCache := infra.NewRestauranteCache(rdb, cfg.RestaurantCacheTTL)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	rolRepo := repository.NewRolRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)
	restauranteRepo := repository.NewRestauranteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authz := service.NewAutorizador(usuarioRepo)
	restauranteSvc := service.NewRestauranteService(restauranteRepo, restauranteCache)
	authSvc := service.NewAuthService(usuarioRepo, rolRepo, restauranteSvc, authz, codec, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, rolRepo, codec, cfg)
	rolSvc := service.NewRolService(rolRepo, usuarioRepo)
	permisoSvc := service.NewPermisoService(permisoRepo, rolRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	rolesH := handler.NewRolesHandler(rolSvc)
	permisosH := handler.NewPermisosHandler(permisoSvc)
	restaurantesH := handler.NewRestaurantesHandler(restauranteSvc)
	enumsH := handler.NewEnumsHandler()

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtMW := middleware.JWTAuth(codec)
	can := func(res model.Resource, m model.Method) gin.HandlerFunc {
		return middleware.RequirePermission(authz, res, m)
	}

	api := r.Group("/api/seguridad")

	authG := api.Group("/auth")
	{
		sessionRL := middleware.SessionRateLimiter(cfg.LoginRatePerMin)
		authG.POST("/login", sessionRL, authH.Login)
		authG.POST("/verify-location", sessionRL, authH.VerificarUbicacion)
		authG.POST("/verify-location-token", sessionRL, authH.VerificarTokenUbicacion)
		authG.POST("/clientSession", sessionRL, authH.SesionCliente)

		authG.POST("/rol", jwtMW, authH.ObtenerRoles)
		authG.POST("/hasPermission", jwtMW, authH.TienePermiso)
		authG.POST("/hasPermissionView", jwtMW, authH.TienePermisoVista)
		authG.POST("/passwordChange", jwtMW, authH.CambiarPassword)
		authG.POST("/passwordChange/admin", jwtMW,
			can(model.ResourceUserSeguridad, model.MethodUpdate), authH.CambiarPasswordAdmin)
	}

	users := api.Group("/users", jwtMW)
	{
		users.PATCH("/me", usuariosH.ActualizarPerfil)
		users.POST("", can(model.ResourceUserSeguridad, model.MethodCreate), usuariosH.Crear)
		users.GET("", can(model.ResourceUserSeguridad, model.MethodRead), usuariosH.Listar)
		users.GET("/:id", can(model.ResourceUserSeguridad, model.MethodRead), usuariosH.ObtenerPorID)
		users.PATCH("/:id", can(model.ResourceUserSeguridad, model.MethodUpdate), usuariosH.Actualizar)
		users.DELETE("/:id", can(model.ResourceUserSeguridad, model.MethodDelete), usuariosH.Eliminar)
	}

	roles := api.Group("/roles", jwtMW)
	{
		roles.POST("", can(model.ResourceRoleSeguridad, model.MethodCreate), rolesH.Crear)
		roles.GET("", can(model.ResourceRoleSeguridad, model.MethodRead), rolesH.Listar)
		roles.GET("/:id", can(model.ResourceRoleSeguridad, model.MethodRead), rolesH.ObtenerPorID)
		roles.PATCH("/:id", can(model.ResourceRoleSeguridad, model.MethodUpdate), rolesH.Actualizar)
		roles.DELETE("/:id", can(model.ResourceRoleSeguridad, model.MethodDelete), rolesH.Eliminar)
	}

	perms := api.Group("/permissions", jwtMW)
	{
		perms.POST("", can(model.ResourcePermissionSeguridad, model.MethodCreate), permisosH.Crear)
		perms.GET("", can(model.ResourcePermissionSeguridad, model.MethodRead), permisosH.Listar)
		perms.GET("/:id", can(model.ResourcePermissionSeguridad, model.MethodRead), permisosH.ObtenerPorID)
		perms.PATCH("/:id", can(model.ResourcePermissionSeguridad, model.MethodUpdate), permisosH.Actualizar)
		perms.DELETE("/:id", can(model.ResourcePermissionSeguridad, model.MethodDelete), permisosH.Eliminar)
	}

	// Restaurant reads are public: the location flow runs before any login.
	rest := api.Group("/restaurants")
	{
		rest.GET("", restaurantesH.Listar)
		rest.GET("/:id", restaurantesH.ObtenerPorID)
		rest.POST("", jwtMW, can(model.ResourceRestaurantSeguridad, model.MethodCreate), restaurantesH.Crear)
		rest.PATCH("", jwtMW, can(model.ResourceRestaurantSeguridad, model.MethodUpdate), restaurantesH.ActualizarCoordenadas)
		rest.PATCH("/:id", jwtMW, can(model.ResourceRestaurantSeguridad, model.MethodUpdate), restaurantesH.Actualizar)
		rest.DELETE("/:id", jwtMW, can(model.ResourceRestaurantSeguridad, model.MethodDelete), restaurantesH.Eliminar)
	}

	enums := api.Group("/enums")
	{
		enums.GET("/User/dataType", enumsH.DataTypes)
		enums.GET("/Permission/type", enumsH.PermissionTypes)
		enums.GET("/Permission/resource", enumsH.Recursos)
		enums.GET("/Permission/method", enumsH.Metodos)
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
