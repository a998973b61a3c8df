package worktree

// cityNames holds candidate worktree names, derived from Natural Earth
// populated places (public domain): SCALERANK <= 4, POP_MAX >= 1.2M,
// at most one hyphen, truncated to 250 entries.
var cityNames = []string{
	"tokyo", "mexico-city", "mumbai", "sao-paulo", "delhi",
	"shanghai", "kolkata", "dhaka", "buenos-aires", "los-angeles",
	"karachi", "cairo", "osaka", "beijing", "manila",
	"moscow", "istanbul", "paris", "seoul", "lagos",
	"jakarta", "chicago", "guangzhou", "london", "lima",
	"tehran", "kinshasa", "bogota", "shenzhen", "wuhan",
	"hong-kong", "tianjin", "chennai", "taipei", "bengaluru",
	"bangkok", "lahore", "chongqing", "hyderabad", "amaravati",
	"santiago", "miami", "belo-horizonte", "madrid", "philadelphia",
	"ahmedabad", "toronto", "singapore", "luanda", "baghdad",
	"barcelona", "dallas", "shenyang", "khartoum", "pune",
	"sydney", "saint-petersburg", "chattogram", "dongguan", "atlanta",
	"boston", "riyadh", "houston", "hanoi", "washington",
	"guadalajara", "melbourne", "alexandria", "chengdu", "detroit",
	"yangon", "xi-an", "porto-alegre", "surat", "abidjan",
	"brasilia", "ankara", "monterrey", "nanjing", "montreal",
	"guiyang", "recife", "harbin", "fortaleza", "urumqi",
	"phoenix", "salvador", "busan", "san-francisco", "johannesburg",
	"berlin", "algiers", "rome", "pyongyang", "medellin",
	"kabul", "athens", "nagoya", "cape-town", "changchun",
	"casablanca", "dalian", "kanpur", "kano", "tel-aviv",
	"addis-ababa", "curitiba", "seattle", "zibo", "jeddah",
	"nairobi", "hangzhou", "caracas", "milan", "kunming",
	"jaipur", "san-diego", "taiyuan", "frankfurt", "qingdao",
	"surabaya", "lisbon", "jinan", "fukuoka", "campinas",
	"kaohsiung", "aleppo", "durban", "kyiv", "lucknow",
	"zhengzhou", "taichung", "ibadan", "minneapolis", "fuzhou",
	"dakar", "changsha", "izmir", "lanzhou", "incheon",
	"sapporo", "xiamen", "guayaquil", "george-town", "san-juan",
	"mashhad", "damascus", "nagpur", "lianshan", "shijiazhuang",
	"tunis", "vienna", "jilin-city", "omdurman", "bandung",
	"wenzhou", "nanchang", "tampa", "vancouver", "denver",
	"birmingham", "baltimore", "cali", "sendai", "naples",
	"manchester", "st-louis", "puebla-city", "tripoli", "tashkent",
	"nanchong", "havana", "nanning", "belem", "patna",
	"santo-domingo", "zaozhuang", "baku", "accra", "yantai",
	"medan", "xuzhou", "linyi", "maracaibo", "kuwait-city",
	"hiroshima", "baotou", "hefei", "indore", "goiania",
	"sanaa", "haiphong", "suzhou", "nanyang", "bucharest",
	"ningbo", "douala", "cleveland", "portland", "asuncion",
	"brisbane", "beirut", "pittsburgh", "las-vegas", "minsk",
	"kyoto", "barranquilla", "valencia", "hamburg", "vadodara",
	"manaus", "wuxi", "palembang", "san-bernardino", "brussels",
	"bhopal", "hohhot", "warsaw", "rabat", "quito",
	"antananarivo", "coimbatore", "daqing", "budapest", "san-jose",
	"ludhiana", "qiqihar", "anshan", "cincinnati", "handan",
	"isfahan", "yaounde", "sacramento", "shantou", "agra",
	"zhanjiang", "la-paz", "abuja", "harare", "tijuana",
	"khulna", "perth", "visakhapatnam", "multan", "kochi",
	"montevideo", "gujranwala", "florence", "conakry", "bamako",
}
