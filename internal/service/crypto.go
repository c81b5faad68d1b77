package service

import (
	"cryptomarket/internal/domain"     // Importing domain models
	"cryptomarket/internal/repository" // Persistence layer
	"cryptomarket/internal/validate"   // Validated inputs
)

// CryptoPage is the listing envelope returned by both crypto endpoints
type CryptoPage struct {
	Cryptos []domain.CryptoCurrency    `json:"cryptos"`
	Infos   repository.RequisitionInfo `json:"cryptoCurrencyRequisitionInfos"`
}

// CryptoService serves read-only views of the cached snapshot
type CryptoService struct {
	cryptos *repository.CryptoRepository
}

// NewCryptoService creates the service over the given repository
func NewCryptoService(cryptos *repository.CryptoRepository) *CryptoService {
	return &CryptoService{cryptos: cryptos}
}

// FindCryptos returns the filtered page of the cached snapshot
func (s *CryptoService) FindCryptos(in validate.FilterCryptosInput) (*CryptoPage, error) {
	cryptos, info, err := s.cryptos.FindByFilter(in)
	if err != nil {
		return nil, err
	}
	return &CryptoPage{Cryptos: cryptos, Infos: info}, nil
}

// OrderCryptos returns the ordered page of the cached snapshot
func (s *CryptoService) OrderCryptos(in validate.OrderCryptosInput) (*CryptoPage, error) {
	cryptos, info, err := s.cryptos.FindOrdered(in)
	if err != nil {
		return nil, err
	}
	return &CryptoPage{Cryptos: cryptos, Infos: info}, nil
}
