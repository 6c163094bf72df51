package ledger

// contractABI describes the provenance contract surface the service uses:
// batch creation, product registration, scans, and the two read-only queries.
const contractABI = `[
	{
		"inputs": [
			{"internalType": "uint256", "name": "_id", "type": "uint256"},
			{"internalType": "string", "name": "_name", "type": "string"},
			{"internalType": "string", "name": "_initialLocation", "type": "string"}
		],
		"name": "createBatch",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "string", "name": "_serial", "type": "string"},
			{"internalType": "uint256", "name": "_batchId", "type": "uint256"}
		],
		"name": "registerProduct",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "_id", "type": "uint256"},
			{"internalType": "string", "name": "_location", "type": "string"},
			{"internalType": "string", "name": "_status", "type": "string"}
		],
		"name": "scanBatch",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "", "type": "uint256"}
		],
		"name": "batches",
		"outputs": [
			{"internalType": "uint256", "name": "id", "type": "uint256"},
			{"internalType": "string", "name": "name", "type": "string"},
			{"internalType": "bool", "name": "isInitialized", "type": "bool"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "_id", "type": "uint256"}
		],
		"name": "getBatchHistory",
		"outputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "timestamp", "type": "uint256"},
					{"internalType": "string", "name": "location", "type": "string"},
					{"internalType": "string", "name": "status", "type": "string"},
					{"internalType": "address", "name": "actor", "type": "address"}
				],
				"internalType": "struct ProductVerification.ScanRecord[]",
				"name": "",
				"type": "tuple[]"
			}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`
