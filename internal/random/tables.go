package random

// Reference tables for name, contact and address synthesis. These are fixed
// data, never mutated at runtime.

var maleFirstNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Joseph", "Charles", "Thomas", "Daniel",
	"Matthew", "Anthony", "Mark", "Steven", "Paul", "Andrew", "Joshua", "Kenneth", "Kevin", "Brian",
	"George", "Timothy", "Ronald", "Edward", "Jason", "Jeffrey", "Ryan", "Jacob", "Gary", "Nicholas",
	"Eric", "Jonathan", "Stephen", "Larry", "Justin", "Scott", "Brandon", "Benjamin", "Samuel", "Raymond",
	"Alexander", "Patrick", "Frank", "Gregory", "Jack", "Dennis", "Jerry", "Tyler", "Aaron", "Jose",
}

var femaleFirstNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth", "Susan", "Jessica", "Sarah", "Karen",
	"Lisa", "Nancy", "Betty", "Margaret", "Sandra", "Ashley", "Kimberly", "Emily", "Donna", "Michelle",
	"Dorothy", "Carol", "Amanda", "Melissa", "Deborah", "Stephanie", "Rebecca", "Sharon", "Laura", "Cynthia",
	"Kathleen", "Amy", "Angela", "Shirley", "Anna", "Brenda", "Pamela", "Emma", "Nicole", "Helen",
	"Samantha", "Katherine", "Christine", "Debra", "Rachel", "Carolyn", "Janet", "Catherine", "Maria", "Heather",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
}

var emailDomains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "icloud.com", "protonmail.com",
}

var corporateDomains = []string{
	"company.com", "enterprise.io", "corp.net", "business.org", "work.co",
}

var streetTypes = []string{"St", "Ave", "Blvd", "Dr", "Ln", "Rd", "Way", "Ct", "Pl", "Cir"}

var streetNames = []string{
	"Main", "Oak", "Maple", "Cedar", "Pine", "Elm", "Washington", "Lake", "Hill", "Park",
	"River", "Forest", "Spring", "Valley", "Sunset", "Highland", "Meadow", "Garden", "Church", "Mill",
}

var cities = []City{
	{"New York", "NY", "10001"},
	{"Los Angeles", "CA", "90001"},
	{"Chicago", "IL", "60601"},
	{"Houston", "TX", "77001"},
	{"Phoenix", "AZ", "85001"},
	{"Philadelphia", "PA", "19101"},
	{"San Antonio", "TX", "78201"},
	{"San Diego", "CA", "92101"},
	{"Dallas", "TX", "75201"},
	{"San Jose", "CA", "95101"},
	{"Austin", "TX", "78701"},
	{"Jacksonville", "FL", "32099"},
	{"Fort Worth", "TX", "76101"},
	{"Columbus", "OH", "43085"},
	{"Charlotte", "NC", "28201"},
	{"Seattle", "WA", "98101"},
	{"Denver", "CO", "80201"},
	{"Boston", "MA", "02101"},
	{"Nashville", "TN", "37201"},
	{"Portland", "OR", "97201"},
	{"Miami", "FL", "33101"},
	{"Atlanta", "GA", "30301"},
	{"Las Vegas", "NV", "89101"},
	{"Minneapolis", "MN", "55401"},
	{"Detroit", "MI", "48201"},
}

var companies = []string{
	"Acme Corp", "TechFlow Inc", "Global Solutions", "Innovate Labs", "Summit Enterprises",
	"NextGen Systems", "Prime Industries", "Apex Holdings", "United Dynamics", "CoreTech",
	"BlueSky Ventures", "Quantum Analytics", "FuturePath", "Stellar Group", "Pioneer Tech",
}
