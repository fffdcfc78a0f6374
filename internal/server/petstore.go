package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/desertthunder/petstore/internal/models"
	"github.com/desertthunder/petstore/internal/services"
	"github.com/desertthunder/petstore/internal/shared"
)

// PetStoreHandler serves the /pet_store endpoints.
type PetStoreHandler struct {
	service services.Service
	logger  *log.Logger
}

// NewPetStoreHandler creates a handler backed by service.
func NewPetStoreHandler(service services.Service, logger *log.Logger) *PetStoreHandler {
	return &PetStoreHandler{service: service, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PetStoreHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/pet_store", Handler: h.createPetStore},
		{Method: http.MethodPost, Path: "/pet_store/{id}/employee", Handler: h.addEmployee},
		{Method: http.MethodPost, Path: "/pet_store/{id}/customer", Handler: h.addCustomer},
		{Method: http.MethodGet, Path: "/pet_store", Handler: h.retrieveAll},
		{Method: http.MethodGet, Path: "/pet_store/{id}", Handler: h.retrieveByID},
		{Method: http.MethodDelete, Path: "/pet_store/{id}", Handler: h.deleteByID},
	}
}

func (h *PetStoreHandler) createPetStore(w http.ResponseWriter, r *http.Request) {
	var data models.PetStoreData
	if err := decode(r, &data); err != nil {
		respondErr(w, r, err)
		return
	}

	h.logger.Info("creating pet store", "id", data.StoreID(), "name", data.StoreName)

	saved, err := h.service.SavePetStore(r.Context(), data)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

func (h *PetStoreHandler) addEmployee(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var employee models.PetStoreEmployee
	if err := decode(r, &employee); err != nil {
		respondErr(w, r, err)
		return
	}

	h.logger.Info("adding employee to pet store", "store", storeID, "id", employee.EmployeeID(), "name", employee.EmployeeName)

	saved, err := h.service.SaveEmployee(r.Context(), storeID, employee)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, saved)
}

func (h *PetStoreHandler) addCustomer(w http.ResponseWriter, r *http.Request) {
	storeID, err := parseStoreID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var customer models.PetStoreCustomer
	if err := decode(r, &customer); err != nil {
		respondErr(w, r, err)
		return
	}

	h.logger.Info("adding customer to pet store", "store", storeID, "id", customer.CustomerID(), "name", customer.CustomerName)

	saved, err := h.service.SaveCustomer(r.Context(), storeID, customer)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, saved)
}

func (h *PetStoreHandler) retrieveAll(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("retrieving all pet stores")

	stores, err := h.service.RetrieveAllPetStores(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, stores)
}

func (h *PetStoreHandler) retrieveByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseStoreID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	h.logger.Info("retrieving pet store", "id", id)

	store, err := h.service.RetrievePetStoreByID(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, store)
}

func (h *PetStoreHandler) deleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseStoreID(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	h.logger.Info("deleting pet store", "id", id)

	if err := h.service.DeletePetStoreByID(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Pet store with ID=%d was deleted successfully.", id),
	})
}

// parseStoreID parses the {id} path variable.
func parseStoreID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: pet store id %q is not a number", shared.ErrInvalidInput, raw)
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// HealthHandler reports that the server is accepting requests.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (HealthHandler) Routes() []Route {
	return []Route{{Method: http.MethodGet, Path: "/health", Handler: health}}
}

func health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
