package chain

import (
  "context"
  "fmt"
  "math/big"
  "strings"
  "time"

  "github.com/ethereum/go-ethereum"
  "github.com/ethereum/go-ethereum/accounts/abi"
  "github.com/ethereum/go-ethereum/accounts/abi/bind"
  "github.com/ethereum/go-ethereum/common"
  ethtypes "github.com/ethereum/go-ethereum/core/types"
  "github.com/ethereum/go-ethereum/crypto"
  "github.com/ethereum/go-ethereum/ethclient"
  "github.com/shopspring/decimal"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/utils"
)

// Client mirrors traceability registrations onto the audit contract. Every
// event carries the entity's business fields plus its custom id and, for the
// derived kinds, the immediate origin's custom id.
type Client interface {
  RegisterRawLot(ctx context.Context, ev RawLotEvent) (string, error)
  RegisterSawnLot(ctx context.Context, ev SawnLotEvent) (string, error)
  RegisterProduct(ctx context.Context, ev ProductEvent) (string, error)
  RawLotExists(ctx context.Context, customID string) (bool, error)
  SawnLotExists(ctx context.Context, customID string) (bool, error)
  ProductExists(ctx context.Context, customID string) (bool, error)
  Timeout() time.Duration
}

type RawLotEvent struct {
  CustomID      string
  Latitude      decimal.Decimal
  Longitude     decimal.Decimal
  PermitNumber  string
  LicenseNumber string
  Species       string
  VolumeM3      decimal.Decimal
}

type SawnLotEvent struct {
  CustomID       string
  OriginCustomID string
  VolumeM3       decimal.Decimal
  ProductType    string
  Dimensions     string
}

type ProductEvent struct {
  CustomID       string
  OriginCustomID string
  SKU            string
  Name           string
}

type Config struct {
  RPCURL          string
  ContractAddress string
  ContractABI     string
  PrivateKey      string
  ChainID         int64
  Timeout         time.Duration
  GasLimitDefault uint64
}

func ConfigFromEnv(log *logger.Logger) Config {
  timeoutSec := utils.GetEnvAsInt("CHAIN_TIMEOUT_SECONDS", 30, log)
  // 11155111 is Sepolia.
  chainID := utils.GetEnvAsInt("CHAIN_ID", 11155111, log)
  return Config{
    RPCURL:          strings.TrimSpace(utils.GetEnv("CHAIN_RPC_URL", "", log)),
    ContractAddress: strings.TrimSpace(utils.GetEnv("CHAIN_CONTRACT_ADDRESS", "", log)),
    ContractABI:     strings.TrimSpace(utils.GetEnv("CHAIN_CONTRACT_ABI", "", log)),
    PrivateKey:      strings.TrimSpace(utils.GetEnv("CHAIN_PRIVATE_KEY", "", log)),
    ChainID:         int64(chainID),
    Timeout:         time.Duration(timeoutSec) * time.Second,
    GasLimitDefault: 300000,
  }
}

type client struct {
  log             *logger.Logger
  eth             *ethclient.Client
  contractABI     abi.ABI
  contract        common.Address
  from            common.Address
  key             *ecdsaKey
  chainID         *big.Int
  timeout         time.Duration
  gasLimitDefault uint64
}

func NewFromEnv(log *logger.Logger) (Client, error) {
  return New(log, ConfigFromEnv(log))
}

func New(log *logger.Logger, cfg Config) (Client, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }
  clientLog := log.With("client", "ChainClient")

  if cfg.RPCURL == "" {
    return nil, fmt.Errorf("missing CHAIN_RPC_URL")
  }
  if cfg.ContractAddress == "" {
    return nil, fmt.Errorf("missing CHAIN_CONTRACT_ADDRESS")
  }
  if cfg.ContractABI == "" {
    return nil, fmt.Errorf("missing CHAIN_CONTRACT_ABI")
  }
  if cfg.PrivateKey == "" {
    return nil, fmt.Errorf("missing CHAIN_PRIVATE_KEY")
  }
  if cfg.Timeout <= 0 {
    cfg.Timeout = 30 * time.Second
  }
  if cfg.GasLimitDefault == 0 {
    cfg.GasLimitDefault = 300000
  }

  parsedABI, err := abi.JSON(strings.NewReader(cfg.ContractABI))
  if err != nil {
    return nil, fmt.Errorf("Failed to parse contract ABI: %w", err)
  }

  privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
  if err != nil {
    return nil, fmt.Errorf("Failed to parse CHAIN_PRIVATE_KEY: %w", err)
  }

  eth, err := ethclient.Dial(cfg.RPCURL)
  if err != nil {
    return nil, fmt.Errorf("Failed to dial chain RPC: %w", err)
  }

  return &client{
    log:             clientLog,
    eth:             eth,
    contractABI:     parsedABI,
    contract:        common.HexToAddress(cfg.ContractAddress),
    from:            crypto.PubkeyToAddress(privateKey.PublicKey),
    key:             &ecdsaKey{priv: privateKey},
    chainID:         big.NewInt(cfg.ChainID),
    timeout:         cfg.Timeout,
    gasLimitDefault: cfg.GasLimitDefault,
  }, nil
}

func (c *client) Timeout() time.Duration {
  return c.timeout
}

func (c *client) RegisterRawLot(ctx context.Context, ev RawLotEvent) (string, error) {
  return c.submit(ctx, "registrarLoteTora",
    ev.CustomID,
    coordinateString(ev.Latitude, ev.Longitude),
    ev.PermitNumber,
    ev.LicenseNumber,
    ev.Species,
    volumeToUnits(ev.VolumeM3),
  )
}

func (c *client) RegisterSawnLot(ctx context.Context, ev SawnLotEvent) (string, error) {
  return c.submit(ctx, "registrarLoteSerrado",
    ev.CustomID,
    ev.OriginCustomID,
    volumeToUnits(ev.VolumeM3),
    ev.ProductType,
    ev.Dimensions,
  )
}

func (c *client) RegisterProduct(ctx context.Context, ev ProductEvent) (string, error) {
  return c.submit(ctx, "registrarProdutoAcabado",
    ev.CustomID,
    ev.OriginCustomID,
    ev.SKU,
    ev.Name,
  )
}

func (c *client) RawLotExists(ctx context.Context, customID string) (bool, error) {
  return c.callExists(ctx, "lotesToraExiste", customID)
}

func (c *client) SawnLotExists(ctx context.Context, customID string) (bool, error) {
  return c.callExists(ctx, "loteSerradoExiste", customID)
}

func (c *client) ProductExists(ctx context.Context, customID string) (bool, error) {
  return c.callExists(ctx, "produtoExiste", customID)
}

// submit packs the call, signs it with the configured key and waits (bounded
// by ctx) for the receipt. Returns the transaction hash on success.
func (c *client) submit(ctx context.Context, method string, args ...interface{}) (string, error) {
  data, err := c.contractABI.Pack(method, args...)
  if err != nil {
    return "", fmt.Errorf("Failed to pack %s call: %w", method, err)
  }

  nonce, err := c.eth.PendingNonceAt(ctx, c.from)
  if err != nil {
    return "", fmt.Errorf("Failed to fetch nonce: %w", err)
  }
  gasPrice, err := c.eth.SuggestGasPrice(ctx)
  if err != nil {
    return "", fmt.Errorf("Failed to fetch gas price: %w", err)
  }
  gasLimit, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
    From: c.from,
    To:   &c.contract,
    Data: data,
  })
  if err != nil {
    c.log.Warn("Gas estimate failed, using default", "method", method, "error", err)
    gasLimit = c.gasLimitDefault
  }

  tx := ethtypes.NewTransaction(nonce, c.contract, big.NewInt(0), gasLimit, gasPrice, data)
  signedTx, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(c.chainID), c.key.priv)
  if err != nil {
    return "", fmt.Errorf("Failed to sign transaction: %w", err)
  }
  if err := c.eth.SendTransaction(ctx, signedTx); err != nil {
    return "", fmt.Errorf("Failed to send transaction: %w", err)
  }

  receipt, err := bind.WaitMined(ctx, c.eth, signedTx)
  if err != nil {
    return "", fmt.Errorf("Failed waiting for receipt: %w", err)
  }
  if receipt.Status != ethtypes.ReceiptStatusSuccessful {
    return "", fmt.Errorf("Transaction %s reverted", signedTx.Hash().Hex())
  }
  return signedTx.Hash().Hex(), nil
}

func (c *client) callExists(ctx context.Context, method string, customID string) (bool, error) {
  data, err := c.contractABI.Pack(method, customID)
  if err != nil {
    return false, fmt.Errorf("Failed to pack %s call: %w", method, err)
  }
  out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: data}, nil)
  if err != nil {
    return false, fmt.Errorf("Failed %s call: %w", method, err)
  }
  results, err := c.contractABI.Unpack(method, out)
  if err != nil {
    return false, fmt.Errorf("Failed to unpack %s result: %w", method, err)
  }
  if len(results) == 0 {
    return false, fmt.Errorf("Empty %s result", method)
  }
  exists, ok := results[0].(bool)
  if !ok {
    return false, fmt.Errorf("Unexpected %s result type %T", method, results[0])
  }
  return exists, nil
}
