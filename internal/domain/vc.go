package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"time"
)

// W3C Verifiable Credentials style envelope, kept for display compatibility.
//
// The "proof" produced here is a SIMULATION: the jws field is a plain SHA-256
// content hash salted with a single platform-wide constant shared by every
// credential, and the blockchain anchor is fabricated locally (random block
// number, random transaction hash, no chain interaction). None of it provides
// authenticity - a real deployment would need per-issuer asymmetric keys and
// an actual anchoring mechanism.

const platformSigningKey = "AMEENCHECK_PLATFORM_KEY"

type VerifiableCredential struct {
	Context           []string                 `json:"@context"`
	ID                string                   `json:"id"`
	Type              []string                 `json:"type"`
	Issuer            VCIssuer                 `json:"issuer"`
	IssuanceDate      string                   `json:"issuanceDate"`
	ExpirationDate    string                   `json:"expirationDate,omitempty"`
	CredentialSubject map[string]interface{}   `json:"credentialSubject"`
	Evidence          []map[string]interface{} `json:"evidence"`
	CredentialStatus  VCStatus                 `json:"credentialStatus"`
	Proof             *VCProof                 `json:"proof,omitempty"`
}

type VCIssuer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type VCStatus struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type VCProof struct {
	Type               string            `json:"type"`
	Created            string            `json:"created"`
	ProofPurpose       string            `json:"proofPurpose"`
	VerificationMethod string            `json:"verificationMethod"`
	JWS                string            `json:"jws"`
	BlockchainAnchor   *BlockchainAnchor `json:"blockchainAnchor"`
}

// BlockchainAnchor is a locally fabricated stand-in for a chain anchor.
type BlockchainAnchor struct {
	Type            string `json:"type"`
	Chain           string `json:"chain"`
	BlockNumber     int64  `json:"blockNumber"`
	BlockHash       string `json:"blockHash"`
	TransactionHash string `json:"transactionHash"`
	Timestamp       string `json:"timestamp"`
	Anchored        bool   `json:"anchored"`
}

// NewVerifiableCredential builds the unsigned envelope.
func NewVerifiableCredential(id, credentialType string, issued time.Time, expiry *time.Time, subject map[string]interface{}, evidence []map[string]interface{}) *VerifiableCredential {
	vc := &VerifiableCredential{
		Context: []string{
			"https://www.w3.org/2018/credentials/v1",
			"https://www.ameencheck.com/credentials/v1",
		},
		ID:   id,
		Type: []string{"VerifiableCredential", credentialType},
		Issuer: VCIssuer{
			ID:   "did:ameencheck:platform",
			Name: "AmeenCheck Platform",
			URL:  "https://ameencheck.com",
		},
		IssuanceDate:      issued.UTC().Format(time.RFC3339),
		CredentialSubject: subject,
		Evidence:          evidence,
		CredentialStatus: VCStatus{
			ID:   "https://ameencheck.com/status/" + id,
			Type: "CredentialStatusList2021",
		},
	}
	if expiry != nil {
		vc.ExpirationDate = expiry.UTC().Format(time.RFC3339)
	}
	if vc.Evidence == nil {
		vc.Evidence = []map[string]interface{}{}
	}
	return vc
}

// signingPayload is the canonical subset of fields covered by the simulated
// signature.
func (vc *VerifiableCredential) signingPayload() []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"id":           vc.ID,
		"issuer":       vc.Issuer.ID,
		"issuanceDate": vc.IssuanceDate,
		"subject":      vc.CredentialSubject,
	})
	return payload
}

// Sign attaches the simulated proof. Not a real signature: the hash is
// reproducible by anyone holding the shared platform constant.
func (vc *VerifiableCredential) Sign() *VerifiableCredential {
	sum := sha256.Sum256(append(vc.signingPayload(), []byte(platformSigningKey)...))
	signature := hex.EncodeToString(sum[:])

	vc.Proof = &VCProof{
		Type:               "RsaSignature2018",
		Created:            time.Now().UTC().Format(time.RFC3339),
		ProofPurpose:       "assertionMethod",
		VerificationMethod: "did:ameencheck:platform#key-1",
		JWS:                signature,
		BlockchainAnchor:   simulateAnchor(signature),
	}
	return vc
}

// VerifyProof recomputes the simulated signature and checks expiry.
func (vc *VerifiableCredential) VerifyProof(now time.Time) (signatureValid, expired bool) {
	if vc.Proof == nil || vc.Proof.JWS == "" {
		return false, false
	}
	sum := sha256.Sum256(append(vc.signingPayload(), []byte(platformSigningKey)...))
	signatureValid = vc.Proof.JWS == hex.EncodeToString(sum[:])

	if vc.ExpirationDate != "" {
		if exp, err := time.Parse(time.RFC3339, vc.ExpirationDate); err == nil {
			expired = exp.Before(now)
		}
	}
	return signatureValid, expired
}

// simulateAnchor fabricates a plausible-looking anchor record.
func simulateAnchor(signature string) *BlockchainAnchor {
	sum := sha256.Sum256([]byte(signature + fmt.Sprint(time.Now().UnixNano())))

	txBytes := make([]byte, 32)
	_, _ = rand.Read(txBytes)

	blockOffset, _ := rand.Int(rand.Reader, big.NewInt(10000000))

	return &BlockchainAnchor{
		Type:            "EthereumAnchor2021",
		Chain:           "Ethereum Mainnet",
		BlockNumber:     18000000 + blockOffset.Int64(),
		BlockHash:       "0x" + hex.EncodeToString(sum[:]),
		TransactionHash: "0x" + hex.EncodeToString(txBytes),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Anchored:        true,
	}
}
