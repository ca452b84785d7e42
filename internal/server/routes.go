package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"crowdcube/internal/handlers"
	"crowdcube/internal/middlewares"
	"crowdcube/internal/utils"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestLogger(log.Logger))
	r.Use(middlewares.CorsMiddleware(s.cfg.AllowedOrigins))
	r.Use(s.rateLimiter.RateLimit)
	r.Use(s.promMiddleware.Instrument)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.RootHandler).Methods("GET")
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerAuthRoutes(r)
	s.registerUserRoutes(r)
	s.registerCampaignRoutes(r)
	s.registerDonationRoutes(r)

	return r
}

func (s *Server) authed(h http.HandlerFunc) http.Handler {
	return middlewares.AuthMiddleware(s.jwt)(h)
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService, s.cfg.CookieSecure)

	r.HandleFunc("/login", ah.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/logout", ah.Logout).Methods("POST", "OPTIONS")
}

func (s *Server) registerUserRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userService)

	r.HandleFunc("/users", uh.CreateUser).Methods("POST", "OPTIONS")
}

func (s *Server) registerCampaignRoutes(r *mux.Router) {
	ch := handlers.NewCampaignHandler(s.campaignService)

	r.Handle("/campaigns", s.authed(ch.AddCampaign)).Methods("POST", "OPTIONS")
	r.HandleFunc("/campaigns", ch.GetCampaigns).Methods("GET", "OPTIONS")
	r.HandleFunc("/running-campaigns", ch.GetRunningCampaigns).Methods("GET", "OPTIONS")
	r.Handle("/my-campaigns", s.authed(ch.GetMyCampaigns)).Methods("GET", "OPTIONS")
	r.Handle("/campaigns/{id}", s.authed(ch.UpdateCampaign)).Methods("PATCH", "OPTIONS")
	r.Handle("/fundBalance/{id}", s.authed(ch.UpdateFundBalance)).Methods("PATCH", "OPTIONS")
	r.HandleFunc("/campaign/{id}", ch.GetCampaign).Methods("GET", "OPTIONS")
	r.Handle("/my-campaigns/delete/{id}", s.authed(ch.DeleteCampaign)).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerDonationRoutes(r *mux.Router) {
	dh := handlers.NewDonationHandler(s.donationService)

	r.Handle("/donations", s.authed(dh.AddDonation)).Methods("POST", "OPTIONS")
	r.Handle("/my-donations", s.authed(dh.GetMyDonations)).Methods("GET", "OPTIONS")
}
